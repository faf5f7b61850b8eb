package models

// Category is an entry in the expense/income category catalog. Default
// categories ship with the application; user-defined ones live alongside them.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Type   string `json:"type"` // income or expense
	Custom bool   `json:"custom"`
}
