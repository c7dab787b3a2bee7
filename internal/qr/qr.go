package qr

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Payload - результат разбора отсканированной строки QR-кода
type Payload struct {
	EventID string
	Token   string
}

var payloadPattern = regexp.MustCompile(`^(?:event|join)/([^/?]+)`)

// Parse разбирает отсканированную строку: отбрасывает scheme://host и ведущий
// слэш, извлекает идентификатор события из сегмента event/<id> или join/<id>
// и опциональный token из query-части
func Parse(raw string) (*Payload, error) {
	s := strings.TrimSpace(raw)

	// strip scheme://host
	if idx := strings.Index(s, "://"); idx != -1 {
		s = s[idx+3:]
		if slash := strings.Index(s, "/"); slash != -1 {
			s = s[slash+1:]
		} else {
			s = ""
		}
	}

	s = strings.TrimPrefix(s, "/")

	match := payloadPattern.FindStringSubmatch(s)
	if match == nil {
		return nil, fmt.Errorf("неверный формат QR-кода: %q", raw)
	}

	payload := &Payload{EventID: match[1]}

	if qIdx := strings.Index(s, "?"); qIdx != -1 {
		if values, err := url.ParseQuery(s[qIdx+1:]); err == nil {
			payload.Token = values.Get("token")
		}
	}

	return payload, nil
}

// BuildJoinURL строит URL страницы подтверждения входа. Скан QR-кода всегда
// ведет на подтверждение, а не сразу в событие, даже когда токен присутствует:
// пользователь сам выбирает способ входа
func BuildJoinURL(baseURL, eventID, token string) string {
	joinURL := strings.TrimSuffix(baseURL, "/") + "/join/" + eventID

	if token != "" {
		joinURL += "?token=" + url.QueryEscape(token)
	}

	return joinURL
}

// EncodePNG рендерит QR-код в PNG указанного размера
func EncodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка при генерации QR-кода: %w", err)
	}

	return png, nil
}
