package catalog

type ModuleResponse struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ModulesResponse struct {
	Modules []ModuleResponse `json:"modules"`
}

func (m *Module) ToResponse() ModuleResponse {
	return ModuleResponse{
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}
