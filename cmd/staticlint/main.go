// Статический анализатор проекта.
//
// Запуск: go run ./cmd/staticlint ./...
// (из каталога cmd/staticlint: go run . ../../...)
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/staticcheck"

	"mycheck/osexit"
)

func main() {
	// analysis/passes
	mychecks := []*analysis.Analyzer{
		errorsas.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		unusedresult.Analyzer,
	}
	// staticcheck
	for _, v := range staticcheck.Analyzers {
		// Проверки класса SA
		if v.Analyzer.Name[0:2] == "SA" {
			mychecks = append(mychecks, v.Analyzer)
		}
	}
	// Собственный анализатор
	mychecks = append(mychecks, osexit.Analyzer)

	multichecker.Main(mychecks...)
}
