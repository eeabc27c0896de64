package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abrigo-care/abrigo/internal/application/packages/dto"
	"github.com/abrigo-care/abrigo/internal/application/packages/usecases"
	"github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
	"github.com/abrigo-care/abrigo/internal/shared/utils"
)

type SubscriptionHandler struct {
	subscribeUC            *usecases.SubscribeUseCase
	getUserSubscriptionsUC *usecases.GetUserSubscriptionsUseCase
	updateSubscriptionUC   *usecases.UpdateSubscriptionUseCase
	cancelSubscriptionUC   *usecases.CancelSubscriptionUseCase
	addAddOnUC             *usecases.AddAddOnUseCase
	removeAddOnUC          *usecases.RemoveAddOnUseCase
	validateLegalUC        *usecases.ValidateLegalCapacityUseCase
	logger                 logger.Interface
}

func NewSubscriptionHandler(
	subscribeUC *usecases.SubscribeUseCase,
	getUserSubscriptionsUC *usecases.GetUserSubscriptionsUseCase,
	updateSubscriptionUC *usecases.UpdateSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	addAddOnUC *usecases.AddAddOnUseCase,
	removeAddOnUC *usecases.RemoveAddOnUseCase,
	validateLegalUC *usecases.ValidateLegalCapacityUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscribeUC:            subscribeUC,
		getUserSubscriptionsUC: getUserSubscriptionsUC,
		updateSubscriptionUC:   updateSubscriptionUC,
		cancelSubscriptionUC:   cancelSubscriptionUC,
		addAddOnUC:             addAddOnUC,
		removeAddOnUC:          removeAddOnUC,
		validateLegalUC:        validateLegalUC,
		logger:                 logger.NewLogger(),
	}
}

type SubscribeAddOnRequest struct {
	AddOnID             uint                   `json:"add_on_id" binding:"required"`
	Quantity            int                    `json:"quantity"`
	BillingCycle        string                 `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
	CustomConfiguration map[string]interface{} `json:"custom_configuration"`
}

type SubscribeRequest struct {
	UserID                uint                    `json:"user_id" binding:"required"`
	PackageID             uint                    `json:"package_id" binding:"required"`
	BillingCycle          string                  `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
	ReferralCode          string                  `json:"referral_code"`
	AddOns                []SubscribeAddOnRequest `json:"add_ons"`
	AutoRenew             *bool                   `json:"auto_renew"`
	LegalRepresentativeID *uint                   `json:"legal_representative_id"`
	CustomConfiguration   map[string]interface{}  `json:"custom_configuration"`
	SelectedFeatures      map[string]interface{}  `json:"selected_features"`
	CustomLimits          map[string]interface{}  `json:"custom_limits"`
}

type UpdateSubscriptionRequest struct {
	AutoRenew           *bool                  `json:"auto_renew"`
	EndDate             *time.Time             `json:"end_date"`
	CustomConfiguration map[string]interface{} `json:"custom_configuration"`
	SelectedFeatures    map[string]interface{} `json:"selected_features"`
	CustomLimits        map[string]interface{} `json:"custom_limits"`
}

type AddAddOnRequest struct {
	AddOnID             uint                   `json:"add_on_id" binding:"required"`
	Quantity            int                    `json:"quantity"`
	BillingCycle        string                 `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
	CustomConfiguration map[string]interface{} `json:"custom_configuration"`
}

type subscribeResponse struct {
	Subscription *dto.UserPackageDTO  `json:"subscription"`
	AddOns       []*dto.AttachmentDTO `json:"add_ons,omitempty"`
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for subscribe", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	cmd := usecases.SubscribeCommand{
		UserID:                req.UserID,
		PackageID:             req.PackageID,
		BillingCycle:          req.BillingCycle,
		ReferralCode:          req.ReferralCode,
		AutoRenew:             autoRenew,
		LegalRepresentativeID: req.LegalRepresentativeID,
		CustomConfiguration:   req.CustomConfiguration,
		SelectedFeatures:      req.SelectedFeatures,
		CustomLimits:          req.CustomLimits,
	}
	for _, addOn := range req.AddOns {
		cmd.AddOns = append(cmd.AddOns, usecases.SubscribeAddOnInput{
			AddOnID:             addOn.AddOnID,
			Quantity:            addOn.Quantity,
			BillingCycle:        addOn.BillingCycle,
			CustomConfiguration: addOn.CustomConfiguration,
		})
	}

	result, err := h.subscribeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !result.OK() {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError(result.Message))
		return
	}

	utils.CreatedResponse(c, subscribeResponse{
		Subscription: dto.FromUserPackage(result.Subscription),
		AddOns:       dto.FromAttachments(result.Attachments),
	}, "Subscription created successfully")
}

func (h *SubscriptionHandler) GetUserSubscriptions(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GetUserSubscriptionsCommand{
		UserID: userID,
		Status: c.Query("status"),
	}

	subs, err := h.getUserSubscriptionsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.FromUserPackages(subs))
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		SubscriptionID: subscriptionID,
		Patch: usecases.SubscriptionPatch{
			AutoRenew:           req.AutoRenew,
			EndDate:             req.EndDate,
			CustomConfiguration: req.CustomConfiguration,
			SelectedFeatures:    req.SelectedFeatures,
			CustomLimits:        req.CustomLimits,
		},
	}

	sub, err := h.updateSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", dto.FromUserPackage(sub))
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", dto.FromUserPackage(sub))
}

func (h *SubscriptionHandler) AddAddOn(c *gin.Context) {
	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add add-on", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationErrorFromBinding(err))
		return
	}

	cmd := usecases.AddAddOnCommand{
		SubscriptionID:      subscriptionID,
		AddOnID:             req.AddOnID,
		Quantity:            req.Quantity,
		BillingCycle:        req.BillingCycle,
		CustomConfiguration: req.CustomConfiguration,
	}

	result, err := h.addAddOnUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !result.OK() {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError(result.Message))
		return
	}

	utils.CreatedResponse(c, dto.FromAttachment(result.Attachment), "Add-on attached successfully")
}

func (h *SubscriptionHandler) RemoveAddOn(c *gin.Context) {
	attachmentID, err := parseIDParam(c, "attachment_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeAddOnUC.Execute(c.Request.Context(), usecases.RemoveAddOnCommand{
		AttachmentID: attachmentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Add-on removed successfully", nil)
}

func (h *SubscriptionHandler) ValidateLegalCapacity(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	packageID, err := parseIDParam(c, "package_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.validateLegalUC.Execute(c.Request.Context(), usecases.ValidateLegalCapacityCommand{
		UserID:    userID,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
