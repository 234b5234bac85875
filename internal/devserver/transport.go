package devserver

import "net/http"

// Transport serves requests in-process through the fiber app, without a
// listener. Cookies and redirects are still handled by the http.Client using it.
func (s *Server) Transport() http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return s.app.Test(req, -1)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
