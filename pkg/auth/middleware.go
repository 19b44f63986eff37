package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// HTTPMiddleware authenticates every request outside publicPaths. Paths
// ending in "/" are treated as prefixes. With a nil resolver all protected
// requests are rejected.
func HTTPMiddleware(resolver SessionResolver, publicPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, publicPaths) || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				// EventSource cannot set headers
				token = r.URL.Query().Get("access_token")
			}
			if token == "" {
				writeUnauthenticated(w, "missing bearer token")
				return
			}
			if resolver == nil {
				writeUnauthenticated(w, "authentication not configured")
				return
			}

			uc, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				if errors.HasCode(err, errors.ErrCodeUnavailable) {
					writeError(w, http.StatusServiceUnavailable, errors.ErrCodeUnavailable, "session store unavailable")
					return
				}
				writeUnauthenticated(w, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), uc)))
		})
	}
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if strings.HasSuffix(p, "/") && strings.HasPrefix(path, p) {
			return true
		}
		if path == p {
			return true
		}
	}
	return false
}

func writeUnauthenticated(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, errors.ErrCodeUnauthenticated, msg)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": string(code), "message": msg},
	})
}

// UnaryServerInterceptor authenticates unary gRPC calls from the
// "authorization" metadata. Methods with a prefix in publicMethods skip it.
func UnaryServerInterceptor(resolver SessionResolver, publicMethods ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if hasPrefix(info.FullMethod, publicMethods) {
			return handler(ctx, req)
		}
		authed, err := authenticateGRPC(ctx, resolver)
		if err != nil {
			return nil, err
		}
		return handler(authed, req)
	}
}

// StreamServerInterceptor is the streaming counterpart of UnaryServerInterceptor.
func StreamServerInterceptor(resolver SessionResolver, publicMethods ...string) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if hasPrefix(info.FullMethod, publicMethods) {
			return handler(srv, ss)
		}
		authed, err := authenticateGRPC(ss.Context(), resolver)
		if err != nil {
			return err
		}
		return handler(srv, &authedStream{ServerStream: ss, ctx: authed})
	}
}

func authenticateGRPC(ctx context.Context, resolver SessionResolver) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	var token string
	for _, v := range md.Get("authorization") {
		if t, ok := BearerToken(v); ok {
			token = t
			break
		}
	}
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing bearer token")
	}
	if resolver == nil {
		return nil, status.Error(codes.Unauthenticated, "authentication not configured")
	}

	uc, err := resolver.ResolveSession(ctx, token)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeUnavailable) {
			return nil, status.Error(codes.Unavailable, "session store unavailable")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid or expired session")
	}
	return WithUserContext(ctx, uc), nil
}

func hasPrefix(method string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedStream) Context() context.Context {
	return s.ctx
}
