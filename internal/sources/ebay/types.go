package ebay

// ItemSummary is a single item from a Browse API search response.
type ItemSummary struct {
	ItemID           string      `json:"itemId"`
	Title            string      `json:"title"`
	ShortDescription string      `json:"shortDescription,omitempty"`
	Price            *ItemPrice  `json:"price,omitempty"`
	ItemWebURL       string      `json:"itemWebUrl"`
	Condition        string      `json:"condition"`
	Seller           *ItemSeller `json:"seller,omitempty"`
	BuyingOptions    []string    `json:"buyingOptions"`
}

// ItemPrice holds eBay price information.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ItemSeller holds eBay seller information.
type ItemSeller struct {
	Username string `json:"username"`
}

type browseAPIResponse struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
