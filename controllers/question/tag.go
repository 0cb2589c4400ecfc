package questionController

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateTag creates a tag, optionally under a parent
func AdminCreateTag(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData := new(struct {
		Name     string `json:"name"`
		ParentID *uint  `json:"parent_id"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
	}

	if reqData.ParentID != nil {
		var parent models.Tag
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.ParentID, false).First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent tag not found!", nil)
		}
	}

	tag := models.Tag{
		Name:     reqData.Name,
		ParentID: reqData.ParentID,
	}

	if err := database.Database.Db.Create(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create tag!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Tag created successfully!", tag)
}

// GetTags lists all tags
func GetTags(c *fiber.Ctx) error {
	var tags []models.Tag
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&tags).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tags!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tags fetched successfully!", tags)
}

// AdminDeleteTag soft deletes a tag
func AdminDeleteTag(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	tagID, err := c.ParamsInt("tag_id")
	if err != nil || tagID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid tag id!", nil)
	}

	var tag models.Tag
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", tagID, false).First(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tag not found!", nil)
	}

	tag.IsDeleted = true
	if err := database.Database.Db.Save(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete tag!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tag deleted successfully!", nil)
}
