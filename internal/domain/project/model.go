package project

// Project is a named unit of work that beats accumulate against.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Estimation  string `json:"estimation,omitempty"`
	Archived    bool   `json:"archived"`
}
