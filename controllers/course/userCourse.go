package controllers

import (
	"edadmin/database"
	"edadmin/middleware"
	courseModels "edadmin/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedCourses lists published courses with pagination
func GetPublishedCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	var total int64
	database.Database.Db.Model(&courseModels.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false).Count(&total)

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// EnrollCourse enrolls the authenticated user in a published course
func EnrollCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Already enrolled is a no-op
	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled!", existing)
	}

	var totalContents int64
	database.Database.Db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Count(&totalContents)

	enrollment := courseModels.Enrollment{
		UserID:        userID,
		CourseID:      uint(courseID),
		TotalContents: int(totalContents),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}
