package models

// CalculationRequest is the input of a pollinator abundance calculation
type CalculationRequest struct {
	PlantationID int64 `json:"plantation_id" form:"plantation_id" binding:"required,min=1"`
	ROIID        int64 `json:"roi_id" form:"roi_id" binding:"required,min=1"`
	CAID         int64 `json:"ca_id" form:"ca_id" binding:"required,min=1"`
}

// ResultValues groups the per-zone summaries and their difference
type ResultValues struct {
	CA    Summary `json:"CA"`
	ROI   Summary `json:"ROI"`
	Delta Summary `json:"Delta"` // ROI - CA
}

// CalculationResult is the output of a pollinator abundance calculation
type CalculationResult struct {
	RatioX          float64      `json:"ratio_x"`
	RatioY          float64      `json:"ratio_y"`
	WidthKmCA       float64      `json:"width_km_ca"`
	HeightKmCA      float64      `json:"height_km_ca"`
	AlignmentPointX float64      `json:"alignment_point_x"`
	AlignmentPointY float64      `json:"alignment_point_y"`
	ResultValues    ResultValues `json:"result_values"`
}
