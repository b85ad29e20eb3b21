package giantswarm

// Environment is a locally remembered environment of a company.
type Environment struct {
	Name        string `json:"name"         yaml:"name"`
	CompanyName string `json:"company_name" yaml:"company_name"`
}

// Application is an entry of an environment's application list.
type Application struct {
	Company     string `json:"company"     yaml:"company"`
	Environment string `json:"environment" yaml:"environment"`
	Application string `json:"application" yaml:"application"`
	CreatedAt   string `json:"created_at"  yaml:"created_at"`
}

// ApplicationStatus is the status tree of one application.
type ApplicationStatus struct {
	Name     string          `json:"name"     yaml:"name"`
	Status   string          `json:"status"   yaml:"status"`
	Services []ServiceStatus `json:"services" yaml:"services"`
}

// ServiceStatus is the status of a service within an application.
type ServiceStatus struct {
	Name       string            `json:"name"       yaml:"name"`
	Status     string            `json:"status"     yaml:"status"`
	Maximum    int               `json:"maximum"    yaml:"maximum"`
	Minimum    int               `json:"minimum"    yaml:"minimum"`
	Components []ComponentStatus `json:"components" yaml:"components"`
}

// ComponentStatus is the status of a component within a service.
type ComponentStatus struct {
	Name      string           `json:"name"      yaml:"name"`
	Status    string           `json:"status"    yaml:"status"`
	Maximum   int              `json:"maximum"   yaml:"maximum"`
	Minimum   int              `json:"minimum"   yaml:"minimum"`
	Instances []InstanceStatus `json:"instances" yaml:"instances"`
}

// InstanceStatus is the status of a running component instance.
type InstanceStatus struct {
	ID        string `json:"id"         yaml:"id"`
	Status    string `json:"status"     yaml:"status"`
	Image     string `json:"image"      yaml:"image"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// InstanceStatistics holds resource usage of one instance.
type InstanceStatistics struct {
	Component          string  `json:"component"            yaml:"component"`
	MemoryUsageMB      float64 `json:"memory_usage_mb"      yaml:"memory_usage_mb"`
	MemoryCapacityMB   float64 `json:"memory_capacity_mb"   yaml:"memory_capacity_mb"`
	MemoryUsagePercent float64 `json:"memory_usage_percent" yaml:"memory_usage_percent"`
	CPUUsagePercent    float64 `json:"cpu_usage_percent"    yaml:"cpu_usage_percent"`
}

// User is the logged in account.
type User struct {
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// ComponentRef addresses one component of an application for scaling.
type ComponentRef struct {
	Company     string
	Environment string
	Application string
	Service     string
	Component   string
}
