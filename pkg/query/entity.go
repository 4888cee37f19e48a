package query

// Entity is one record flowing through the pipeline: a UHT code plus the
// free-text fields the dashboard displays. Mirrors catalog.Entity without
// importing it.
type Entity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	CreatedAt   int64  `json:"createdAt"`
}

// Row is one ordered output of a pipeline run.
type Row struct {
	Entity     Entity  `json:"entity"`
	Metrics    Metrics `json:"metrics"`
	LayerColor string  `json:"layerColor"`
}
