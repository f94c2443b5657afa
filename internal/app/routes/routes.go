package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/controllers"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/middleware"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/postigiusti/bacheca/internal/pkg/websocket"
)

// SetupRoutes registers all API routes on the engine
func SetupRoutes(router *gin.Engine, ctrl *controllers.Controllers, jwtService *auth.JWTService, hub *websocket.Hub) {
	api := router.Group("/api/v1")

	// Public endpoints
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Auth.Register)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.POST("/refresh", ctrl.Auth.RefreshToken)
	}
	api.GET("/invites/verify/:token", ctrl.Invite.VerifyToken)
	api.GET("/sponsor", ctrl.Sponsor.ResolveBanner)

	// Read-only browsing needs no account: the geo drill-down, the
	// province boards, and their conversations.
	api.GET("/regions", ctrl.Geo.GetRegions)
	api.GET("/regions/:id/provinces", ctrl.Geo.GetProvinces)
	api.GET("/provinces/:id/posts", ctrl.Post.GetBoard)
	api.GET("/posts/:id/comments", ctrl.Comment.GetComments)
	api.GET("/comments/replies", ctrl.Comment.GetReplies)

	// The websocket handshake authenticates via query token since
	// browsers cannot attach headers to it.
	api.GET("/ws", websocket.Handler(hub, jwtService))

	// Authenticated endpoints
	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.GET("/me", ctrl.Auth.GetMe)
		authenticated.GET("/me/selection", ctrl.Selection.GetSelection)
		authenticated.PUT("/me/selection", ctrl.Selection.SaveSelection)

		authenticated.GET("/messages", ctrl.Message.GetInbox)
		authenticated.GET("/messages/unread", ctrl.Message.GetUnreadCount)

		// Writing requires full membership
		member := authenticated.Group("")
		member.Use(middleware.RoleRequired(models.RoleMember, models.RoleAdmin))
		{
			member.POST("/provinces/:id/posts", ctrl.Post.CreatePost)
			member.PATCH("/posts/:id/close", ctrl.Post.ClosePost)
			member.POST("/posts/:id/comments", ctrl.Comment.CreateComment)
			member.POST("/comments/:id/reply", ctrl.Comment.CreateReply)

			member.POST("/invites", ctrl.Invite.CreateInvite)
			member.GET("/invites", ctrl.Invite.GetMyInvites)
			member.GET("/invites/quota", ctrl.Invite.GetQuota)

			member.POST("/messages", ctrl.Message.SendMessage)

			member.POST("/reports", ctrl.Report.CreateReport)
		}

		// Admin panel
		admin := authenticated.Group("/admin")
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/profiles", ctrl.Admin.ListProfiles)
			admin.POST("/profiles/:id/approve", ctrl.Admin.ApproveProfile)
			admin.PATCH("/profiles/:id/active", ctrl.Admin.SetProfileActive)
			admin.GET("/invites", ctrl.Admin.ListInvites)
			admin.POST("/invites/:id/approve", ctrl.Admin.ApproveInvite)

			admin.GET("/sponsors", ctrl.Sponsor.ListSponsors)
			admin.PUT("/sponsors", ctrl.Sponsor.UpsertSponsor)
			admin.DELETE("/sponsors/:id", ctrl.Sponsor.DeleteSponsor)
			admin.GET("/sponsors/history", ctrl.Sponsor.ListHistory)

			admin.GET("/reports", ctrl.Report.ListReports)
			admin.PATCH("/reports/:id/status", ctrl.Report.UpdateReportStatus)
		}
	}
}
