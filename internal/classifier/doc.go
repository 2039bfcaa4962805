// Package classifier provides a similarity classifier built on top of an
// embedding pipeline.
//
// DifferenceClassifier takes two parallel lists of inputs and predicts
// whether each pair is similar. The features are simply the elementwise
// absolute difference of the two encoded inputs; the actual classification
// is delegated to a pluggable binary Head (logistic regression with balanced
// class weights by default). There is no novel algorithm here, just glue
// between the encoder and the head.
package classifier
