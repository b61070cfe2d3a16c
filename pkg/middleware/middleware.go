package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	Middlewares []Middleware
}

func NewTransport(middlewares ...Middleware) *Transport {
	return &Transport{
		Middlewares: middlewares,
	}
}

func (t *Transport) GetMiddlewares() []interface{} {
	var handlers []interface{}
	for _, m := range t.Middlewares {
		if m == nil {
			continue
		}
		handlers = append(handlers, m.Middleware())
	}
	return handlers
}

func (t *Transport) RegisterMiddleware(m Middleware) {
	t.Middlewares = append(t.Middlewares, m)
}
