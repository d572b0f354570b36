package ml

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
)

// SearchSpace enumerates candidate hyperparameter values. Empty dimensions
// fall back to the default for that parameter.
type SearchSpace struct {
	NumTrees        []int
	MaxFeatures     []string
	MaxDepth        []int
	MinSamplesSplit []int
	MinSamplesLeaf  []int
	Bootstrap       []bool
}

// Configurations expands the space into the full cartesian product, in a
// stable order so tie-breaking between equal-scoring configurations is
// deterministic.
func (s *SearchSpace) Configurations() []Params {
	def := DefaultParams()
	numTrees := orDefaultInts(s.NumTrees, def.NumTrees)
	maxFeatures := orDefaultStrings(s.MaxFeatures, def.MaxFeatures)
	maxDepth := orDefaultInts(s.MaxDepth, def.MaxDepth)
	minSplit := orDefaultInts(s.MinSamplesSplit, def.MinSamplesSplit)
	minLeaf := orDefaultInts(s.MinSamplesLeaf, def.MinSamplesLeaf)
	bootstrap := s.Bootstrap
	if len(bootstrap) == 0 {
		bootstrap = []bool{def.Bootstrap}
	}

	var out []Params
	for _, nt := range numTrees {
		for _, mf := range maxFeatures {
			for _, md := range maxDepth {
				for _, ms := range minSplit {
					for _, ml := range minLeaf {
						for _, b := range bootstrap {
							out = append(out, Params{
								NumTrees:        nt,
								MaxFeatures:     mf,
								MaxDepth:        md,
								MinSamplesSplit: ms,
								MinSamplesLeaf:  ml,
								Bootstrap:       b,
							})
						}
					}
				}
			}
		}
	}
	return out
}

// Model is a trained estimator bound to a fixed ordered feature list and a
// target name. Inference must supply exactly that feature set.
type Model struct {
	forest       *Forest
	FeatureNames []string
	Target       string
	Params       Params
}

// NewModel binds an already-fitted forest to its feature list and target.
// Train is the usual way to obtain a model; this exists for callers that fit
// the forest themselves.
func NewModel(forest *Forest, featureNames []string, target string, params Params) *Model {
	return &Model{
		forest:       forest,
		FeatureNames: append([]string(nil), featureNames...),
		Target:       target,
		Params:       params,
	}
}

// PredictValues applies the model to a named feature map. The second return
// is false when any trained feature is missing from the map.
func (m *Model) PredictValues(values map[string]float64) (float64, bool) {
	x := make([]float64, len(m.FeatureNames))
	for i, name := range m.FeatureNames {
		v, ok := values[name]
		if !ok {
			return 0, false
		}
		x[i] = v
	}
	return m.forest.Predict(x), true
}

// FeatureImportance is the permutation importance of one feature: the MSE
// increase observed when that feature's test column is shuffled.
type FeatureImportance struct {
	Name     string  `json:"name"`
	MSEDelta float64 `json:"mse_delta"`
}

// Result bundles a trained model with its held-out evaluation artifacts.
// Metrics and importances are informational and never gate the pipeline.
type Result struct {
	Model      *Model
	Metrics    models.EvalMetrics
	Importance []FeatureImportance
}

// Trainer fits forests, optionally selecting hyperparameters by k-fold
// cross-validated grid search.
type Trainer struct {
	logger  *logrus.Logger
	workers int
}

// NewTrainer creates a trainer. workers <= 0 uses one worker per CPU.
func NewTrainer(logger *logrus.Logger, workers int) *Trainer {
	if logger == nil {
		logger = logrus.New()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Trainer{logger: logger, workers: workers}
}

// Train fits a forest predicting target from featureNames on the training set
// and evaluates it once on the held-out test set. When space is non-nil the
// hyperparameters are selected by k-fold cross-validated search minimizing
// mean squared error, refit on the full training set.
func (t *Trainer) Train(trainSet, testSet *dataset.Table, featureNames []string, target string, space *SearchSpace, folds int, seed int64) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.TrainingDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	for _, name := range append([]string{target}, featureNames...) {
		if !trainSet.HasColumn(name) {
			return nil, fmt.Errorf("%w: column %q absent from training set", models.ErrTrainingData, name)
		}
	}
	if folds < 2 {
		folds = 3
	}
	if trainSet.Len() < folds {
		return nil, fmt.Errorf("%w: %d rows cannot support %d folds", models.ErrTrainingData, trainSet.Len(), folds)
	}

	X, err := trainSet.Matrix(featureNames)
	if err != nil {
		return nil, err
	}
	y, err := trainSet.Column(target)
	if err != nil {
		return nil, err
	}

	best := DefaultParams()
	if space != nil {
		best, err = t.search(X, y, space, folds, seed)
		if err != nil {
			return nil, err
		}
	}

	t.logger.WithFields(logrus.Fields{
		"n_estimators": best.NumTrees,
		"max_features": best.MaxFeatures,
		"rows":         trainSet.Len(),
	}).Info("Fitting model on full training set")

	forest := FitForest(X, y, best, rand.New(rand.NewSource(seed)))
	model := &Model{
		forest:       forest,
		FeatureNames: append([]string(nil), featureNames...),
		Target:       target,
		Params:       best,
	}

	eval, importance := t.evaluate(model, testSet, seed)
	return &Result{Model: model, Metrics: eval, Importance: importance}, nil
}

type searchJob struct {
	configIdx int
	fold      int
}

type searchResult struct {
	configIdx int
	mse       float64
}

// search runs the fold-by-configuration grid on a bounded worker pool. Jobs
// are pure over disjoint index slices; only the result aggregation is shared.
func (t *Trainer) search(X [][]float64, y []float64, space *SearchSpace, folds int, seed int64) (Params, error) {
	configs := space.Configurations()
	metrics.SearchConfigurationsTotal.Add(float64(len(configs)))

	foldOf := assignFolds(len(X), folds, rand.New(rand.NewSource(seed)))

	jobs := make(chan searchJob)
	results := make(chan searchResult)
	var wg sync.WaitGroup

	for w := 0; w < t.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				mse := scoreFold(X, y, foldOf, job.fold, configs[job.configIdx], seed)
				results <- searchResult{configIdx: job.configIdx, mse: mse}
			}
		}()
	}

	go func() {
		for c := range configs {
			for f := 0; f < folds; f++ {
				jobs <- searchJob{configIdx: c, fold: f}
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	sums := make([]float64, len(configs))
	counts := make([]int, len(configs))
	for r := range results {
		sums[r.configIdx] += r.mse
		counts[r.configIdx]++
	}

	bestIdx, bestScore := 0, math.Inf(1)
	for i := range configs {
		if counts[i] == 0 {
			continue
		}
		mean := sums[i] / float64(counts[i])
		if mean < bestScore {
			bestScore = mean
			bestIdx = i
		}
	}

	t.logger.WithFields(logrus.Fields{
		"configurations": len(configs),
		"folds":          folds,
		"best_cv_mse":    bestScore,
	}).Info("Hyperparameter search complete")

	return configs[bestIdx], nil
}

// scoreFold trains on every fold but one and returns the held-out fold's MSE.
// The fit seed is derived from the fold so repeated searches reproduce.
func scoreFold(X [][]float64, y []float64, foldOf []int, fold int, params Params, seed int64) float64 {
	var trainIdx, valIdx []int
	for i, f := range foldOf {
		if f == fold {
			valIdx = append(valIdx, i)
		} else {
			trainIdx = append(trainIdx, i)
		}
	}
	if len(trainIdx) == 0 || len(valIdx) == 0 {
		return math.Inf(1)
	}

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainX[i] = X[idx]
		trainY[i] = y[idx]
	}

	forest := FitForest(trainX, trainY, params, rand.New(rand.NewSource(seed+int64(fold)+1)))

	var sum float64
	for _, idx := range valIdx {
		d := forest.Predict(X[idx]) - y[idx]
		sum += d * d
	}
	return sum / float64(len(valIdx))
}

func assignFolds(n, folds int, rng *rand.Rand) []int {
	order := rng.Perm(n)
	foldOf := make([]int, n)
	for pos, idx := range order {
		foldOf[idx] = pos % folds
	}
	return foldOf
}

// evaluate computes MAE, MSE and R2 plus permutation importances on the
// held-out test set. An empty test set yields zero metrics and a warning; the
// pipeline still proceeds because quality is surfaced, not enforced.
func (t *Trainer) evaluate(model *Model, testSet *dataset.Table, seed int64) (models.EvalMetrics, []FeatureImportance) {
	if testSet == nil || testSet.Len() == 0 {
		t.logger.Warn("Held-out test set is empty, evaluation metrics unavailable")
		return models.EvalMetrics{}, nil
	}

	X, err := testSet.Matrix(model.FeatureNames)
	if err != nil {
		t.logger.WithError(err).Warn("Test set missing model features, evaluation metrics unavailable")
		return models.EvalMetrics{}, nil
	}
	y, err := testSet.Column(model.Target)
	if err != nil {
		t.logger.WithError(err).Warn("Test set missing target column, evaluation metrics unavailable")
		return models.EvalMetrics{}, nil
	}

	preds := make([]float64, len(X))
	for i, x := range X {
		preds[i] = model.forest.Predict(x)
	}

	eval := models.EvalMetrics{
		MAE: meanAbsoluteError(y, preds),
		MSE: meanSquaredError(y, preds),
		R2:  r2Score(y, preds),
	}

	importance := permutationImportance(model, X, y, eval.MSE, rand.New(rand.NewSource(seed)))
	return eval, importance
}

// permutationImportance shuffles one feature column at a time and measures
// the MSE increase, the same diagnostic the report surfaces in its footer.
func permutationImportance(model *Model, X [][]float64, y []float64, baseMSE float64, rng *rand.Rand) []FeatureImportance {
	if len(X) < 2 {
		return nil
	}

	out := make([]FeatureImportance, 0, len(model.FeatureNames))
	for j, name := range model.FeatureNames {
		perm := rng.Perm(len(X))

		var sum float64
		for i, x := range X {
			shuffled := make([]float64, len(x))
			copy(shuffled, x)
			shuffled[j] = X[perm[i]][j]
			d := model.forest.Predict(shuffled) - y[i]
			sum += d * d
		}
		out = append(out, FeatureImportance{Name: name, MSEDelta: sum/float64(len(X)) - baseMSE})
	}

	sort.Slice(out, func(a, b int) bool { return out[a].MSEDelta > out[b].MSEDelta })
	return out
}

func meanAbsoluteError(y, preds []float64) float64 {
	var sum float64
	for i := range y {
		sum += math.Abs(preds[i] - y[i])
	}
	return sum / float64(len(y))
}

func meanSquaredError(y, preds []float64) float64 {
	var sum float64
	for i := range y {
		d := preds[i] - y[i]
		sum += d * d
	}
	return sum / float64(len(y))
}

func r2Score(y, preds []float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i := range y {
		ssRes += (y[i] - preds[i]) * (y[i] - preds[i])
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func orDefaultInts(vals []int, def int) []int {
	if len(vals) == 0 {
		return []int{def}
	}
	return vals
}

func orDefaultStrings(vals []string, def string) []string {
	if len(vals) == 0 {
		return []string{def}
	}
	return vals
}
