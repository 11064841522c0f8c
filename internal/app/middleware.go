package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/labhive/labhive/pkg/member"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Resolve X-Member-Id into the request context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			memberIdHeader := req.Header.Get("X-Member-Id")
			ctx := req.Context()

			if memberIdHeader != "" {
				m, err := deps.MemberService.GetMemberByUID(ctx, memberIdHeader)
				if err != nil {
					if errors.Is(err, member.ErrMemberNotFound) {
						log.Debugf("member not found: %s", memberIdHeader)
						http.Error(w, "member not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to resolve member: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				log.Debugf("member resolved: %s (lab %d)", m.UID, m.LabID)
				ctx = member.WithMember(ctx, m)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
