package ports

// Classifier is the loaded binary risk model. Implementations are immutable
// after load and safe for concurrent use.
type Classifier interface {
	// Predict returns the binary class decision for a feature vector
	Predict(vector []float64) (int, error)

	// PredictProba returns the positive-class probability in [0,1]
	PredictProba(vector []float64) (float64, error)
}
