package filters

type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

type Filter struct {
	Name       string      `json:"name"`
	Aliases    []string    `json:"aliases,omitempty"`
	Operands   []string    `json:"operands"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

type ListResponse struct {
	Filters []Filter `json:"filters"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
