package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Category    string `json:"category"`
	RoleRef     string `json:"role_ref,omitempty"`
	Stock       *int   `json:"stock,omitempty"`
}

type ItemDTO struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cost        int    `json:"cost"`
	Category    string `json:"category"`
	RoleRef     string `json:"role_ref,omitempty"`
	Stock       *int   `json:"stock,omitempty"`
}

type ItemResponse struct {
	Status string `json:"status"`
	Data   struct {
		Item ItemDTO `json:"item"`
	} `json:"data"`
}

type ListItemsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Category string    `json:"category"`
		Items    []ItemDTO `json:"items"`
	} `json:"data"`
}

type PurchaseResponse struct {
	Status string `json:"status"`
	Data   struct {
		Item              ItemDTO  `json:"item"`
		NewBalance        int      `json:"new_balance"`
		RoleGranted       bool     `json:"role_granted"`
		ManualFulfillment bool     `json:"manual_fulfillment"`
		Warnings          []string `json:"warnings,omitempty"`
	} `json:"data"`
}
