package models

// LabelData is the editable content of a label, without its surrogate id.
type LabelData struct {
	LabelNumber string `json:"label_number" validate:"required,labelnumber"`
	Material    string `json:"material" validate:"required"`
	Dimension   string `json:"dimension" validate:"required"`
	LotCode     string `json:"lot_code" validate:"required"`
	Weight      int    `json:"weight" validate:"gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Label is a label record owned by the label collection.
type Label struct {
	ID int `json:"id"`
	LabelData
}
