package forest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
)

// Node is one decision node in a serialized tree. Feature -1 marks a leaf,
// in which case Counts holds the training-sample class counts [negative, positive].
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Counts    []float64 `json:"counts,omitempty"`
}

// Tree is a single decision tree, nodes addressed by index with node 0 as root
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is the loaded classifier artifact. Immutable after Load and safe for
// concurrent use without locking.
type Forest struct {
	FeatureNames []string `json:"feature_names"`
	Threshold    float64  `json:"threshold"`
	Trees        []Tree   `json:"trees"`
}

// Load reads and validates a serialized forest artifact. A failure here means
// the process cannot serve predictions and should not start.
func Load(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ModelUnavailable(fmt.Sprintf("cannot read model artifact %s", path), err)
	}

	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.ModelUnavailable("cannot decode model artifact", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *Forest) validate() error {
	if len(f.Trees) == 0 {
		return errors.ModelUnavailable("model artifact contains no trees", nil)
	}
	if len(f.FeatureNames) != models.FeatureCount {
		return errors.ModelUnavailable(
			fmt.Sprintf("model artifact expects %d features, want %d", len(f.FeatureNames), models.FeatureCount), nil)
	}
	// The artifact feature order must match the order vectors are built in.
	for i, name := range f.FeatureNames {
		if name != models.FeatureOrder[i] {
			return errors.ModelUnavailable(
				fmt.Sprintf("model artifact feature %d is %s, want %s", i, name, models.FeatureOrder[i]), nil)
		}
	}
	if f.Threshold <= 0 || f.Threshold >= 1 {
		f.Threshold = 0.5
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return errors.ModelUnavailable(fmt.Sprintf("tree %d is empty", ti), nil)
		}
	}
	return nil
}

// PredictProba returns the mean positive-class probability across all trees
func (f *Forest) PredictProba(vector []float64) (float64, error) {
	if len(vector) != models.FeatureCount {
		return 0, errors.PredictionError(
			fmt.Sprintf("feature vector has %d elements, want %d", len(vector), models.FeatureCount), nil)
	}

	probs := make([]float64, len(f.Trees))
	for i, tree := range f.Trees {
		p, err := tree.positiveProba(vector)
		if err != nil {
			return 0, err
		}
		probs[i] = p
	}

	mean, err := stats.Mean(probs)
	if err != nil {
		return 0, errors.PredictionError("failed to aggregate tree probabilities", err)
	}
	return mean, nil
}

// Predict returns 1 when the mean positive probability crosses the decision
// threshold, 0 otherwise
func (f *Forest) Predict(vector []float64) (int, error) {
	p, err := f.PredictProba(vector)
	if err != nil {
		return 0, err
	}
	if p >= f.Threshold {
		return 1, nil
	}
	return 0, nil
}

// positiveProba walks the tree to a leaf and returns the positive-class share
// of its training counts
func (t *Tree) positiveProba(vector []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, errors.PredictionError("tree node index out of range", nil)
		}
		node := t.Nodes[idx]

		if node.Feature < 0 {
			if len(node.Counts) != 2 {
				return 0, errors.PredictionError("leaf node has malformed class counts", nil)
			}
			total := floats.Sum(node.Counts)
			if total <= 0 {
				return 0, errors.PredictionError("leaf node has no training samples", nil)
			}
			return node.Counts[1] / total, nil
		}

		if node.Feature >= len(vector) {
			return 0, errors.PredictionError("tree references feature outside vector", nil)
		}
		if vector[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, errors.PredictionError("tree walk did not reach a leaf", nil)
}
