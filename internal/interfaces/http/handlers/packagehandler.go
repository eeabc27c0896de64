package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abrigo-care/abrigo/internal/application/packages/dto"
	"github.com/abrigo-care/abrigo/internal/application/packages/usecases"
	"github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
	"github.com/abrigo-care/abrigo/internal/shared/utils"
)

type PackageHandler struct {
	createPackageUC      *usecases.CreatePackageUseCase
	updatePackageUC      *usecases.UpdatePackageUseCase
	getPackageUC         *usecases.GetPackageUseCase
	listPackagesUC       *usecases.ListPackagesUseCase
	deletePackageUC      *usecases.DeletePackageUseCase
	createAddOnUC        *usecases.CreateAddOnUseCase
	listAddOnsUC         *usecases.ListAddOnsUseCase
	calculatePriceUC     *usecases.CalculatePriceUseCase
	getStatisticsUC      *usecases.GetStatisticsUseCase
	getRecommendationsUC *usecases.GetRecommendationsUseCase
	logger               logger.Interface
}

func NewPackageHandler(
	createPackageUC *usecases.CreatePackageUseCase,
	updatePackageUC *usecases.UpdatePackageUseCase,
	getPackageUC *usecases.GetPackageUseCase,
	listPackagesUC *usecases.ListPackagesUseCase,
	deletePackageUC *usecases.DeletePackageUseCase,
	createAddOnUC *usecases.CreateAddOnUseCase,
	listAddOnsUC *usecases.ListAddOnsUseCase,
	calculatePriceUC *usecases.CalculatePriceUseCase,
	getStatisticsUC *usecases.GetStatisticsUseCase,
	getRecommendationsUC *usecases.GetRecommendationsUseCase,
) *PackageHandler {
	return &PackageHandler{
		createPackageUC:      createPackageUC,
		updatePackageUC:      updatePackageUC,
		getPackageUC:         getPackageUC,
		listPackagesUC:       listPackagesUC,
		deletePackageUC:      deletePackageUC,
		createAddOnUC:        createAddOnUC,
		listAddOnsUC:         listAddOnsUC,
		calculatePriceUC:     calculatePriceUC,
		getStatisticsUC:      getStatisticsUC,
		getRecommendationsUC: getRecommendationsUC,
		logger:               logger.NewLogger(),
	}
}

type CreatePackageRequest struct {
	PackageType         string                 `json:"package_type" binding:"required"`
	Name                string                 `json:"name" binding:"required,max=100"`
	Description         string                 `json:"description"`
	PriceMonthly        uint64                 `json:"price_monthly" binding:"required"`
	PriceYearly         *uint64                `json:"price_yearly"`
	Currency            string                 `json:"currency"`
	MaxUsers            *int                   `json:"max_users"`
	MaxDevices          *int                   `json:"max_devices"`
	MaxStorageGB        *int                   `json:"max_storage_gb"`
	Features            map[string]interface{} `json:"features"`
	Limitations         map[string]interface{} `json:"limitations"`
	CustomizableOptions map[string]interface{} `json:"customizable_options"`
	AddOnsAvailable     map[string]interface{} `json:"add_ons_available"`
	BaseConfiguration   map[string]interface{} `json:"base_configuration"`
	IsCustomizable      *bool                  `json:"is_customizable"`
	SupportLevel        string                 `json:"support_level"`
	ResponseTimeHours   *int                   `json:"response_time_hours"`
	IsFeatured          bool                   `json:"is_featured"`
}

type UpdatePackageRequest struct {
	Name                *string                 `json:"name"`
	Description         *string                 `json:"description"`
	PriceMonthly        *uint64                 `json:"price_monthly"`
	PriceYearly         *uint64                 `json:"price_yearly"`
	MaxUsers            *int                    `json:"max_users"`
	MaxDevices          *int                    `json:"max_devices"`
	MaxStorageGB        *int                    `json:"max_storage_gb"`
	Features            *map[string]interface{} `json:"features"`
	Limitations         *map[string]interface{} `json:"limitations"`
	CustomizableOptions *map[string]interface{} `json:"customizable_options"`
	AddOnsAvailable     *map[string]interface{} `json:"add_ons_available"`
	BaseConfiguration   *map[string]interface{} `json:"base_configuration"`
	IsCustomizable      *bool                   `json:"is_customizable"`
	SupportLevel        *string                 `json:"support_level"`
	ResponseTimeHours   *int                    `json:"response_time_hours"`
	IsFeatured          *bool                   `json:"is_featured"`
	IsActive            *bool                   `json:"is_active"`
}

type CreateAddOnRequest struct {
	Name               string   `json:"name" binding:"required,max=100"`
	Description        string   `json:"description"`
	AddOnType          string   `json:"add_on_type" binding:"required"`
	PriceMonthly       uint64   `json:"price_monthly" binding:"required"`
	PriceYearly        *uint64  `json:"price_yearly"`
	CompatiblePackages []string `json:"compatible_packages"`
	MaxQuantity        *int     `json:"max_quantity"`
}

type CalculatePriceAddOnRequest struct {
	AddOnID  uint `json:"add_on_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

type CalculatePriceRequest struct {
	PackageID           uint                         `json:"package_id" binding:"required"`
	CustomConfiguration map[string]interface{}       `json:"custom_configuration"`
	AddOns              []CalculatePriceAddOnRequest `json:"add_ons"`
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create package", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.CreatePackageCommand{
		PackageType:         req.PackageType,
		Name:                req.Name,
		Description:         req.Description,
		PriceMonthly:        req.PriceMonthly,
		PriceYearly:         req.PriceYearly,
		Currency:            req.Currency,
		MaxUsers:            req.MaxUsers,
		MaxDevices:          req.MaxDevices,
		MaxStorageGB:        req.MaxStorageGB,
		Features:            req.Features,
		Limitations:         req.Limitations,
		CustomizableOptions: req.CustomizableOptions,
		AddOnsAvailable:     req.AddOnsAvailable,
		BaseConfiguration:   req.BaseConfiguration,
		IsCustomizable:      req.IsCustomizable,
		SupportLevel:        req.SupportLevel,
		ResponseTimeHours:   req.ResponseTimeHours,
		IsFeatured:          req.IsFeatured,
	}

	pkg, err := h.createPackageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromPackage(pkg), "Package created successfully")
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	packageID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update package", "package_id", packageID, "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.UpdatePackageCommand{
		PackageID: packageID,
		Patch: usecases.PackagePatch{
			Name:                req.Name,
			Description:         req.Description,
			PriceMonthly:        req.PriceMonthly,
			PriceYearly:         req.PriceYearly,
			MaxUsers:            req.MaxUsers,
			MaxDevices:          req.MaxDevices,
			MaxStorageGB:        req.MaxStorageGB,
			Features:            req.Features,
			Limitations:         req.Limitations,
			CustomizableOptions: req.CustomizableOptions,
			AddOnsAvailable:     req.AddOnsAvailable,
			BaseConfiguration:   req.BaseConfiguration,
			IsCustomizable:      req.IsCustomizable,
			SupportLevel:        req.SupportLevel,
			ResponseTimeHours:   req.ResponseTimeHours,
			IsFeatured:          req.IsFeatured,
			IsActive:            req.IsActive,
		},
	}

	pkg, err := h.updatePackageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package updated successfully", dto.FromPackage(pkg))
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	packageID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pkg, err := h.getPackageUC.Execute(c.Request.Context(), packageID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.FromPackage(pkg))
}

func (h *PackageHandler) ListPackages(c *gin.Context) {
	cmd := usecases.ListPackagesCommand{
		PackageType: c.Query("package_type"),
	}
	if featured := c.Query("is_featured"); featured != "" {
		value, err := strconv.ParseBool(featured)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid is_featured value"))
			return
		}
		cmd.IsFeatured = &value
	}

	pkgs, err := h.listPackagesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.FromPackages(pkgs))
}

func (h *PackageHandler) DeletePackage(c *gin.Context) {
	packageID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePackageUC.Execute(c.Request.Context(), packageID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package deactivated successfully", nil)
}

func (h *PackageHandler) CreateAddOn(c *gin.Context) {
	var req CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create add-on", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.CreateAddOnCommand{
		Name:               req.Name,
		Description:        req.Description,
		AddOnType:          req.AddOnType,
		PriceMonthly:       req.PriceMonthly,
		PriceYearly:        req.PriceYearly,
		CompatiblePackages: req.CompatiblePackages,
		MaxQuantity:        req.MaxQuantity,
	}

	addOn, err := h.createAddOnUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromAddOn(addOn), "Add-on created successfully")
}

func (h *PackageHandler) ListAddOns(c *gin.Context) {
	addOns, err := h.listAddOnsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.FromAddOns(addOns))
}

func (h *PackageHandler) CalculatePrice(c *gin.Context) {
	var req CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for calculate price", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.CalculatePriceCommand{
		PackageID:           req.PackageID,
		CustomConfiguration: req.CustomConfiguration,
	}
	for _, addOn := range req.AddOns {
		cmd.AddOns = append(cmd.AddOns, usecases.CalculatePriceAddOnInput{
			AddOnID:  addOn.AddOnID,
			Quantity: addOn.Quantity,
		})
	}

	result, err := h.calculatePriceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *PackageHandler) GetStatistics(c *gin.Context) {
	result, err := h.getStatisticsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type recommendationsResponse struct {
	UserType            string            `json:"user_type"`
	RecommendedPackage  *dto.PackageDTO   `json:"recommended_package"`
	AlternativePackages []*dto.PackageDTO `json:"alternative_packages"`
	Reasoning           string            `json:"reasoning"`
}

func (h *PackageHandler) GetRecommendations(c *gin.Context) {
	cmd := usecases.GetRecommendationsCommand{
		UserType: c.Query("user_type"),
	}
	if budget := c.Query("budget_monthly"); budget != "" {
		value, err := strconv.ParseUint(budget, 10, 64)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid budget_monthly value"))
			return
		}
		cmd.BudgetMonthly = &value
	}
	if features, ok := c.GetQueryArray("required_features"); ok {
		cmd.RequiredFeatures = features
	}

	result, err := h.getRecommendationsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, recommendationsResponse{
		UserType:            result.UserType,
		RecommendedPackage:  dto.FromPackage(result.RecommendedPackage),
		AlternativePackages: dto.FromPackages(result.AlternativePackages),
		Reasoning:           result.Reasoning,
	})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}
