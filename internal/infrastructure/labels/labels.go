// Package labels provides the ordered disease label set aligned with the
// classifier's output positions.
package labels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads an ordered label list from a YAML sequence file. An empty path
// selects the embedded default set.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	var labels []string
	if err := yaml.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("parse labels file: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s contains no labels", path)
	}
	return labels, nil
}

// Default is the label order the bundled model was trained with. Position
// matters: index i aligns with classifier output i.
func Default() []string {
	return []string{
		// cereals
		"Wheat Rust", "Wheat Blast", "Wheat Scab", "Wheat Healthy",
		"Rice Blast", "Rice Brown Spot", "Rice Bacterial Blight", "Rice Healthy",
		"Corn Northern Leaf Blight", "Corn Common Rust", "Corn Gray Leaf Spot", "Corn Southern Rust", "Corn Healthy",
		"Barley Scald", "Barley Net Blotch", "Barley Healthy",
		// vegetables
		"Tomato Bacterial Spot", "Tomato Early Blight", "Tomato Late Blight", "Tomato Leaf Mold",
		"Tomato Septoria Leaf Spot", "Tomato Spider Mites", "Tomato Target Spot",
		"Tomato Yellow Leaf Curl Virus", "Tomato Mosaic Virus", "Tomato Healthy",
		"Potato Early Blight", "Potato Late Blight", "Potato Scab", "Potato Blackleg", "Potato Healthy",
		"Pepper Bacterial Spot", "Pepper Anthracnose", "Pepper Healthy",
		"Cucumber Downy Mildew", "Cucumber Powdery Mildew", "Cucumber Anthracnose", "Cucumber Healthy",
		"Lettuce Downy Mildew", "Lettuce Bacterial Soft Rot", "Lettuce Healthy",
		"Carrot Leaf Blight", "Carrot Root Rot", "Carrot Healthy",
		// fruits
		"Apple Scab", "Apple Fire Blight", "Apple Powdery Mildew", "Apple Healthy",
		"Citrus Canker", "Citrus Greening", "Citrus Melanose", "Citrus Healthy",
		"Grape Downy Mildew", "Grape Powdery Mildew", "Grape Black Rot", "Grape Healthy",
		"Strawberry Powdery Mildew", "Strawberry Gray Mold", "Strawberry Anthracnose", "Strawberry Healthy",
		// legumes
		"Soybean Rust", "Soybean Bacterial Blight", "Soybean Healthy",
		"Bean Anthracnose", "Bean Rust", "Bean Healthy",
		// root crops
		"Sweet Potato Scab", "Sweet Potato Healthy",
		"Cassava Mosaic Disease", "Cassava Brown Streak Disease", "Cassava Healthy",
	}
}
