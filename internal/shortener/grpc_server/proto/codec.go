// Пакет proto. Контракт gRPC-сервиса сокращения ссылок.
// Сообщения передаются в JSON, кодек регистрируется под именем "json".
package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName - подтип content-type для вызовов сервиса
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
