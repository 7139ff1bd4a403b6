package httpadapter

import (
	"context"
	"log/slog"

	"warden/contexts/community-economy/shop-service/application"
	"warden/contexts/community-economy/shop-service/domain/entities"
	domainerrors "warden/contexts/community-economy/shop-service/domain/errors"
	httptransport "warden/contexts/community-economy/shop-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateItemHandler(
	ctx context.Context,
	req httptransport.CreateItemRequest,
) (httptransport.ItemResponse, error) {
	category, ok := entities.ParseItemCategory(req.Category)
	if !ok {
		return httptransport.ItemResponse{}, domainerrors.ErrInvalidCategory
	}

	var (
		item entities.Item
		err  error
	)
	if category.IsUniqueReward() {
		stock := 0
		if req.Stock != nil {
			stock = *req.Stock
		}
		item, err = h.Service.CreateRoleItem(ctx, req.Name, req.Description, req.Cost, req.RoleRef, stock)
	} else {
		item, err = h.Service.CreateItem(ctx, req.Name, req.Description, req.Cost, category)
	}
	if err != nil {
		return httptransport.ItemResponse{}, err
	}

	resp := httptransport.ItemResponse{Status: "success"}
	resp.Data.Item = toItemDTO(item)
	return resp, nil
}

func (h Handler) DeleteItemHandler(ctx context.Context, itemID string) error {
	return h.Service.DeleteItem(ctx, itemID)
}

func (h Handler) ListItemsHandler(ctx context.Context, category string) (httptransport.ListItemsResponse, error) {
	parsed, ok := entities.ParseItemCategory(category)
	if !ok {
		return httptransport.ListItemsResponse{}, domainerrors.ErrInvalidCategory
	}

	items, err := h.Service.ListItems(ctx, parsed)
	if err != nil {
		return httptransport.ListItemsResponse{}, err
	}

	resp := httptransport.ListItemsResponse{Status: "success"}
	resp.Data.Category = string(parsed)
	resp.Data.Items = make([]httptransport.ItemDTO, 0, len(items))
	for _, item := range items {
		resp.Data.Items = append(resp.Data.Items, toItemDTO(item))
	}
	return resp, nil
}

func (h Handler) PurchaseHandler(ctx context.Context, userID, itemID string) (httptransport.PurchaseResponse, error) {
	result, err := h.Service.Purchase(ctx, userID, itemID)
	if err != nil {
		return httptransport.PurchaseResponse{}, err
	}

	resp := httptransport.PurchaseResponse{Status: "success"}
	resp.Data.Item = toItemDTO(result.Item)
	resp.Data.NewBalance = result.NewBalance
	resp.Data.RoleGranted = result.RoleGranted
	resp.Data.ManualFulfillment = result.ManualFulfillment
	resp.Data.Warnings = result.Warnings
	return resp, nil
}

func toItemDTO(item entities.Item) httptransport.ItemDTO {
	return httptransport.ItemDTO{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Description: item.Description,
		Cost:        item.Cost,
		Category:    string(item.Category),
		RoleRef:     item.RoleRef,
		Stock:       item.Stock,
	}
}
