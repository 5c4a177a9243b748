package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
)

// JWKSHandler publishes the keys access tokens are signed with, so other
// museum services can verify them offline.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify access tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	clocksdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, clocksdk.JWKSResponse(keys.PublicJWKS()))
	}
}
