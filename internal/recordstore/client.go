// Package recordstore реализует клиент обобщенного HTTP-хранилища записей.
//
// Хранилище оперирует именованными коллекциями (users, courses, lessons) и
// поддерживает список с фильтрами, чтение по идентификатору, создание,
// полную замену, частичное обновление и удаление записи. Клиент прикрепляет
// bearer-токен текущей сессии к каждому запросу и переводит ответ 401 в
// сброс сессии через зарегистрированный hook.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TokenProvider отдает текущий токен сессии. Пустая строка — токена нет,
// запрос уходит без заголовка Authorization.
type TokenProvider interface {
	Token() string
}

// Client — клиент хранилища записей.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenProvider
	onUnauthorized func()
}

// NewClient создаёт новый клиент хранилища. baseURL указывает на корень API,
// например http://localhost:3000/api. tokens может быть nil — тогда запросы
// всегда анонимные.
func NewClient(baseURL string, tokens TokenProvider, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetUnauthorizedHook регистрирует функцию, вызываемую на каждый ответ 401.
// Hook вызывается ровно один раз на ответ, до возврата ErrUnauthorized.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// List загружает записи коллекции, удовлетворяющие фильтрам q, в out.
func (c *Client) List(ctx context.Context, collection string, q Query, out any) error {
	const op = "recordstore.List"
	path := "/" + collection
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, out)
}

// Get загружает запись коллекции по идентификатору в out.
func (c *Client) Get(ctx context.Context, collection, id string, out any) error {
	const op = "recordstore.Get"
	req, err := c.newRequest(ctx, http.MethodGet, "/"+collection+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, out)
}

// Create добавляет запись в коллекцию. Хранилище назначает идентификатор,
// созданная запись декодируется в out.
func (c *Client) Create(ctx context.Context, collection string, body, out any) error {
	const op = "recordstore.Create"
	req, err := c.newRequest(ctx, http.MethodPost, "/"+collection, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, out)
}

// Replace целиком заменяет запись. Частичное обновление собирается на стороне
// клиента до вызова: хранилище не гарантирует слияние полей при замене.
func (c *Client) Replace(ctx context.Context, collection, id string, body, out any) error {
	const op = "recordstore.Replace"
	req, err := c.newRequest(ctx, http.MethodPut, "/"+collection+"/"+id, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, out)
}

// Patch сливает присланные поля с существующей записью.
func (c *Client) Patch(ctx context.Context, collection, id string, body, out any) error {
	const op = "recordstore.Patch"
	req, err := c.newRequest(ctx, http.MethodPatch, "/"+collection+"/"+id, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, out)
}

// Delete удаляет запись по идентификатору.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	const op = "recordstore.Delete"
	req, err := c.newRequest(ctx, http.MethodDelete, "/"+collection+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s: %w: unexpected status %s", op, ErrStoreUnavailable, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}
	return nil
}
