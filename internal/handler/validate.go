package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate - общий валидатор запросов, потокобезопасен после инициализации
var validate = validator.New(validator.WithRequiredStructEnabled())

// maxBodySize ограничивает размер тела запроса
const maxBodySize = 1 << 20

// decodeAndValidate читает JSON тело запроса в dst и проверяет теги validate.
// Возвращает сообщение, пригодное для ответа клиенту
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return validateStruct(dst)
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return errors.New("invalid request body")
		}
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

// queryInt64 читает обязательный положительный целый query параметр
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}
