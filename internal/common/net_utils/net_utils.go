// Пакет netutils содержит простые сетевые инструменты
package netutils

import (
	"net"
	"net/url"
)

// GetFreePort - получить свободный порт localhost
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// IsAbsoluteURL - проверить, что строка является абсолютным URL:
// непустые схема и хост. Ошибка разбора означает false.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
