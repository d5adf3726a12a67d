// Package age maps a learner's age to a cognitive-stage profile and adapts
// curriculum text to that stage.
//
// Profiles cover ages 5 to 65 without gaps. Ages outside that span are
// clamped to the nearest bucket. All adaptations are table driven and
// deterministic.
package age
