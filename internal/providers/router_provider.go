package providers

import (
	"net/http"

	"pingerconf/internal/structures"
)

type Middleware func(http.Handler) http.Handler

type RouterProviderInterface interface {
	Get(url string, handler http.Handler, mw ...Middleware)
	Post(url string, handler http.Handler, mw ...Middleware)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) add(method, url string, handler http.Handler, mw []Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

// Get registers handler for GET requests; middlewares run in the given order.
func (rp *RouterProvider) Get(url string, handler http.Handler, mw ...Middleware) {
	rp.add(http.MethodGet, url, handler, mw)
}

func (rp *RouterProvider) Post(url string, handler http.Handler, mw ...Middleware) {
	rp.add(http.MethodPost, url, handler, mw)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
