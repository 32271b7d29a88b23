package domain

// UnknownDisease is the sentinel label used when the classifier output index
// falls outside the configured label set.
const UnknownDisease = "Unknown Disease"

// Tensor is a dense multi-dimensional float32 array in NHWC layout, the input
// contract between the image preprocessor and the classifier.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Elements returns the number of values the shape describes.
func (t *Tensor) Elements() int64 {
	if t == nil || len(t.Shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, dim := range t.Shape {
		n *= dim
	}
	return n
}

// PredictionResult is the complete outcome of one inference pass. It is built
// once per request and never partially filled.
type PredictionResult struct {
	DiseaseName         string  `json:"disease_name"`
	ConfidenceScore     float64 `json:"confidence_score"`
	TreatmentSuggestion string  `json:"treatment_suggestion"`
}
