package main

import (
	handler "learnhub/biz/adaptor/controller"
	"learnhub/biz/adaptor/controller/apigateway"
	"learnhub/biz/adaptor/controller/learnhub"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizeRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	apiV1 := r.Group("/api/v1")
	{
		// 用户
		user := apiV1.Group("/user")
		{
			user.POST("/sync", learnhub.SyncUser)
			user.GET("/info", learnhub.GetUserInfo)
			user.POST("/interests", learnhub.UpdateInterests)
			user.POST("/instructor", learnhub.BecomeInstructor)
			user.POST("/wallet/list", learnhub.ListWalletTransactions)
		}

		// 素材上传
		sts := apiV1.Group("/sts")
		{
			sts.POST("/apply", learnhub.ApplySignedUrl)
		}

		// 分类
		category := apiV1.Group("/category")
		{
			category.POST("/create", learnhub.CreateCategory)
			category.GET("/list", learnhub.ListCategories)
		}

		// 课程
		course := apiV1.Group("/course")
		{
			course.POST("/create", learnhub.CreateCourse)
			course.POST("/update", learnhub.UpdateCourse)
			course.POST("/delete", learnhub.DeleteCourse)
			course.POST("/submit", learnhub.SubmitCourse)
			course.POST("/review", learnhub.ReviewCourse)
			course.POST("/publish", learnhub.PublishCourse)
			course.GET("/get", learnhub.GetCourse)
			course.POST("/list/instructor", learnhub.ListInstructorCourses)
			course.POST("/list/published", learnhub.ListPublishedCourses)
		}

		// 章节
		section := apiV1.Group("/section")
		{
			section.POST("/create", learnhub.CreateSection)
			section.POST("/update", learnhub.UpdateSection)
			section.POST("/delete", learnhub.DeleteSection)
			section.POST("/reorder", learnhub.ReorderSection)
		}

		// 视频
		video := apiV1.Group("/video")
		{
			video.POST("/create", learnhub.CreateVideo)
			video.POST("/update", learnhub.UpdateVideo)
			video.POST("/delete", learnhub.DeleteVideo)
			video.POST("/reorder", learnhub.ReorderVideo)
		}

		// 附件
		attachment := apiV1.Group("/attachment")
		{
			attachment.POST("/create", learnhub.CreateAttachment)
			attachment.POST("/delete", learnhub.DeleteAttachment)
			attachment.POST("/reorder", learnhub.ReorderAttachment)
		}

		// 评论
		comment := apiV1.Group("/comment")
		{
			comment.POST("/create", learnhub.CreateComment)
			comment.POST("/update", learnhub.UpdateComment)
			comment.POST("/delete", learnhub.DeleteComment)
			comment.POST("/list", learnhub.ListComments)
		}

		// 回复
		reply := apiV1.Group("/reply")
		{
			reply.POST("/create", learnhub.CreateReply)
			reply.POST("/update", learnhub.UpdateReply)
			reply.POST("/delete", learnhub.DeleteReply)
		}

		// 聊天
		chat := apiV1.Group("/chat")
		{
			chat.POST("/private/create", learnhub.CreatePrivateChatRoom)
			chat.POST("/message/create", learnhub.CreateMessage)
			chat.POST("/private/message/create", learnhub.CreatePrivateMessage)
			chat.POST("/message/list", learnhub.ListMessages)
			chat.GET("/rooms", learnhub.ListMyChatRooms)
			chat.GET("/stream", apigateway.ChatStream)
		}

		// 购买
		purchase := apiV1.Group("/purchase")
		{
			purchase.POST("/create", learnhub.CreatePurchase)
			purchase.POST("/list", learnhub.ListPurchases)
		}

		// 评价
		feedback := apiV1.Group("/feedback")
		{
			feedback.POST("/create", learnhub.CreateFeedback)
			feedback.POST("/update", learnhub.UpdateFeedback)
			feedback.POST("/delete", learnhub.DeleteFeedback)
			feedback.POST("/list", learnhub.ListFeedbacks)
		}
	}
}
