package requests

type UploadDataset struct {
	Name     string `validate:"omitempty,max=120"`
	FileName string `validate:"required"`
	Content  []byte `validate:"required"`
	Tenant   string
}

type FetchDataset struct {
	Name   string `json:"name" validate:"omitempty,max=120"`
	URL    string `json:"url" validate:"required,url"`
	Tenant string
}

type ListDatasets struct {
	Page     int
	PageSize int
	Tenant   string
}

type FindDatasetByID struct {
	DatasetID string
	Tenant    string
}

type DeleteDatasetByID struct {
	DatasetID string
	Tenant    string
}
