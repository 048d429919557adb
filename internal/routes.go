package internal

import (
	"net/http"

	"pingerconf/internal/controllers"
	"pingerconf/internal/providers"
)

func InitRoutes(documents *controllers.DocumentController, gate *controllers.GateController, drafts *controllers.DraftController, auth providers.AuthProviderInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/configs.json", http.HandlerFunc(documents.GetDocument))
	routers.Post("/api/verify-password", http.HandlerFunc(gate.VerifyPassword))
	routers.Post("/api/save-config", http.HandlerFunc(documents.SaveDocument), auth.Authenticate)

	routers.Get("/api/draft", http.HandlerFunc(drafts.GetDraft), auth.Authenticate)
	routers.Post("/api/draft/apply", http.HandlerFunc(drafts.ApplyOperation), auth.Authenticate)
	routers.Post("/api/draft/save", http.HandlerFunc(drafts.SaveDraft), auth.Authenticate)
	routers.Post("/api/draft/discard", http.HandlerFunc(drafts.DiscardDraft), auth.Authenticate)
	return routers
}
