package computeapi

// Instance is a compute engine virtual machine as listed in a zone
type Instance struct {
	Name              string
	Zone              string
	Status            string
	CreationTimestamp string
}

// Firewall is a project-wide firewall rule
type Firewall struct {
	Name              string
	Network           string
	CreationTimestamp string
}
