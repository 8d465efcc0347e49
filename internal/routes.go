package internal

import (
	"meetup/internal/controllers"
	"meetup/internal/providers"
	"net/http"
)

func InitRoutes(groups *controllers.GroupController, recent *controllers.RecentController, filters *controllers.FilterController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/groups", http.HandlerFunc(groups.ListGroups))
	routers.Post("/groups", http.HandlerFunc(groups.CreateGroup))
	routers.Get("/group", http.HandlerFunc(groups.GetDetail))
	routers.Get("/group/members", http.HandlerFunc(groups.GetMembers))
	routers.Post("/group/join", http.HandlerFunc(groups.Join))
	routers.Post("/group/leave", http.HandlerFunc(groups.Leave))
	routers.Post("/group/approve", http.HandlerFunc(groups.Approve))
	routers.Post("/group/reject", http.HandlerFunc(groups.Reject))
	routers.Post("/group/promote", http.HandlerFunc(groups.Promote))
	routers.Post("/group/ban", http.HandlerFunc(groups.Ban))

	routers.Get("/recent", http.HandlerFunc(recent.List))
	routers.Post("/recent", http.HandlerFunc(recent.Add))
	routers.Delete("/recent", http.HandlerFunc(recent.Remove))

	routers.Get("/filters", http.HandlerFunc(filters.Get))
	routers.Post("/filters", http.HandlerFunc(filters.Set))
	return routers
}
