package models

// IssueCategory classifies reports and names the department responsible for them
type IssueCategory struct {
	CategoryID            int    `json:"categoryId"`
	Name                  string `json:"name" validate:"required,max=100"`
	Description           string `json:"description" validate:"max=500"`
	ResponsibleDepartment string `json:"responsibleDepartment" validate:"max=100"`
	IsActive              bool   `json:"isActive"`
}

// GetName returns the category name, or "" for a nil category
func (c *IssueCategory) GetName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// GetIsActive returns whether the category can be chosen for new reports
func (c *IssueCategory) GetIsActive() bool {
	if c == nil {
		return false
	}
	return c.IsActive
}

// GetResponsibleDepartment returns the owning department, or "" for a nil category
func (c *IssueCategory) GetResponsibleDepartment() string {
	if c == nil {
		return ""
	}
	return c.ResponsibleDepartment
}

// DefaultCategories returns the municipal categories seeded into an empty
// category store, in seeding order. IDs are assigned by the store.
func DefaultCategories() []IssueCategory {
	return []IssueCategory{
		{Name: "Roads and Transport", Description: "Potholes, traffic lights, road maintenance", ResponsibleDepartment: "Public Works", IsActive: true},
		{Name: "Water and Sanitation", Description: "Water leaks, blocked drains, sewage issues", ResponsibleDepartment: "Water Services", IsActive: true},
		{Name: "Electricity", Description: "Power outages, streetlight issues, electrical faults", ResponsibleDepartment: "Electricity Services", IsActive: true},
		{Name: "Waste Management", Description: "Refuse collection, illegal dumping, recycling", ResponsibleDepartment: "Waste Services", IsActive: true},
		{Name: "Housing", Description: "Housing maintenance, property issues", ResponsibleDepartment: "Housing Department", IsActive: true},
		{Name: "Parks and Recreation", Description: "Park maintenance, recreational facilities", ResponsibleDepartment: "Parks Department", IsActive: true},
		{Name: "Public Safety", Description: "Security concerns, emergency services", ResponsibleDepartment: "Public Safety", IsActive: true},
		{Name: "Other", Description: "General municipal issues", ResponsibleDepartment: "General Services", IsActive: true},
	}
}
