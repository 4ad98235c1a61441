package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var notifyClient = &http.Client{Timeout: 10 * time.Second}

type errNotification struct {
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// ErrNotify отправляет ответы 5xx на addr (вебхук оповещений)
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}
		body := string(c.Response().Body())

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Debug("error unmarshalling response body in middleware")
		}

		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		requestID, _ := c.Locals("requestid").(string)

		msg := data.Message
		if msg == "" {
			msg = body
		}

		payload, marshalErr := json.Marshal(errNotification{
			Code:      statusCode,
			Method:    method,
			Path:      path,
			RequestID: requestID,
			Error:     msg,
		})
		if marshalErr != nil {
			log.WithError(marshalErr).Warn("error marshalling error notification")
			return err
		}
		go func() {
			resp, reqErr := notifyClient.Post(addr, "application/json", bytes.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("error sending error notification")
				return
			}
			resp.Body.Close()
		}()
		return err
	}
}
