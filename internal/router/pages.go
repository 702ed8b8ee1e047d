package router

import (
	"net/http"
)

// publicPagePaths are reachable without a session. Everything else
// under the page group requires one.
var publicPagePaths = map[string]bool{
	"/":         true,
	"/login":    true,
	"/register": true,
}

// GuardPages is the gatekeeping middleware in front of page rendering:
// unauthenticated visitors may reach public pages only, authenticated
// visitors are redirected away from the sign-in and registration pages,
// and every other page requires a valid session.
func (rt *Router) GuardPages(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		_, err := rt.auth.UserIDFromRequest(request)
		authenticated := err == nil

		path := request.URL.Path
		switch {
		case authenticated && (path == "/login" || path == "/register"):
			http.Redirect(response, request, "/", http.StatusTemporaryRedirect)

		case !authenticated && !publicPagePaths[path]:
			http.Redirect(response, request, "/login", http.StatusTemporaryRedirect)

		default:
			h.ServeHTTP(response, request)
		}
	}

	return http.HandlerFunc(middleware)
}

// The page handlers below are placeholders for the presentation layer,
// which lives outside this core. They exist so the gatekeeping policy
// has real routes to protect.

// GetLandingPage serves the public landing page stub.
func (rt *Router) GetLandingPage(response http.ResponseWriter, request *http.Request) {
	servePage(response, "notekeeper")
}

// GetLoginPage serves the sign-in page stub.
func (rt *Router) GetLoginPage(response http.ResponseWriter, request *http.Request) {
	servePage(response, "sign in")
}

// GetRegisterPage serves the registration page stub.
func (rt *Router) GetRegisterPage(response http.ResponseWriter, request *http.Request) {
	servePage(response, "register")
}

// GetDashboardPage serves the dashboard stub; GuardPages guarantees the
// visitor is authenticated by the time it runs.
func (rt *Router) GetDashboardPage(response http.ResponseWriter, request *http.Request) {
	servePage(response, "dashboard")
}

func servePage(response http.ResponseWriter, title string) {
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(http.StatusOK)
	_, _ = response.Write([]byte("<!DOCTYPE html><html><head><title>" + title + "</title></head><body><h1>" + title + "</h1></body></html>"))
}
