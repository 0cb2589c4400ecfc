package controllers

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	courseModels "edadmin/models/course"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin writes the failure response itself; callers bail out with a
// nil return when ok is false.
func requireAdmin(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return 0, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		return 0, false
	}

	if user.Role != "ADMIN" {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		return 0, false
	}

	return userID, true
}

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		Duration    int64  `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
		Duration:    reqData.Duration,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		Duration    int64  `json:"duration"`
		Status      string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Author != "" {
		course.Author = reqData.Author
	}
	if reqData.Duration > 0 {
		course.Duration = reqData.Duration
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses with pagination
func AdminGetAllCourses(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

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
	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&total)

	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
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

// AdminPublishCourse publishes or unpublishes a course
func AdminPublishCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	publishStatus := c.Locals("publishStatus").(bool)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = publishStatus
	if publishStatus {
		course.Status = "ACTIVE"
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully!"
	if publishStatus {
		message = "Course published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}
