package metalprice

// apiResponse mirrors the price feed's JSON payload. Rates are quoted as the
// price of one troy ounce of the symbol in the requested base currency.
type apiResponse struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
	Error   *apiError          `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
