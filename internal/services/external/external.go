// Package external реализует клиент внешнего сервиса случайных профилей,
// которым наполняются подсказки для регистрации и подбора инструкторов.
//
// Сервис некритичный: любая его ошибка деградирует до пустого списка
// подсказок и не блокирует основной сценарий.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
)

// Client — клиент сервиса случайных профилей.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// New создаёт новый клиент. apiURL указывает на корень API,
// например https://randomuser.me/api/.
func New(apiURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type suggestionsResponse struct {
	Results []models.Suggestion `json:"results"`
}

// Suggestions возвращает count случайных профилей-кандидатов.
// При любой ошибке возвращает пустой список.
func (c *Client) Suggestions(ctx context.Context, count int) []models.Suggestion {
	const op = "external.Suggestions"

	url := fmt.Sprintf("%s?results=%d", c.apiURL, count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn("failed to build suggestions request", sl.Op(op), sl.Err(err))
		return []models.Suggestion{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("failed to fetch suggestions", sl.Op(op), sl.Err(err))
		return []models.Suggestion{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("suggestions service returned unexpected status",
			sl.Op(op), slog.String("status", resp.Status))
		return []models.Suggestion{}
	}

	var parsed suggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.log.Warn("failed to decode suggestions response", sl.Op(op), sl.Err(err))
		return []models.Suggestion{}
	}
	return parsed.Results
}
