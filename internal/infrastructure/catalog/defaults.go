package catalog

import "github.com/agrovision/crop-disease-api/internal/core/domain"

// defaultCatalog is the embedded last-resort knowledge base covering the
// tomato, potato and corn classes the first trained model shipped with.
func defaultCatalog() domain.Catalog {
	return domain.Catalog{
		"Tomato Bacterial Spot": {
			Description: "Bacterial spot is a common disease of tomato caused by Xanthomonas vesicatoria",
			Treatment:   "Apply copper-based fungicides, improve air circulation, avoid overhead watering, remove infected plant debris",
			Prevention:  "Use disease-free seeds, practice crop rotation, maintain proper spacing between plants",
		},
		"Tomato Early Blight": {
			Description: "Early blight is caused by the fungus Alternaria solani",
			Treatment:   "Apply fungicides containing chlorothalonil or copper, remove infected leaves, improve air circulation",
			Prevention:  "Mulch around plants, avoid overhead watering, practice crop rotation",
		},
		"Tomato Late Blight": {
			Description: "Late blight is caused by the oomycete Phytophthora infestans",
			Treatment:   "Apply fungicides containing chlorothalonil or copper, remove infected plants immediately",
			Prevention:  "Avoid overhead watering, ensure good drainage, practice crop rotation",
		},
		"Tomato Leaf Mold": {
			Description: "Leaf mold is caused by the fungus Passalora fulva",
			Treatment:   "Apply fungicides, improve air circulation, reduce humidity",
			Prevention:  "Use resistant varieties, maintain proper spacing, avoid overhead watering",
		},
		"Tomato Septoria Leaf Spot": {
			Description: "Septoria leaf spot is caused by the fungus Septoria lycopersici",
			Treatment:   "Apply fungicides containing chlorothalonil, remove infected leaves",
			Prevention:  "Practice crop rotation, avoid overhead watering, maintain clean garden",
		},
		"Tomato Spider Mites": {
			Description: "Spider mites are tiny arachnids that feed on plant sap",
			Treatment:   "Apply insecticidal soap or neem oil, increase humidity, remove heavily infested leaves",
			Prevention:  "Regular monitoring, maintain proper humidity, avoid over-fertilization",
		},
		"Tomato Target Spot": {
			Description: "Target spot is caused by the fungus Corynespora cassiicola",
			Treatment:   "Apply fungicides, improve air circulation, remove infected leaves",
			Prevention:  "Practice crop rotation, maintain proper spacing, avoid overhead watering",
		},
		"Tomato Yellow Leaf Curl Virus": {
			Description: "Yellow leaf curl virus is transmitted by whiteflies",
			Treatment:   "Control whitefly populations, remove infected plants, apply systemic insecticides",
			Prevention:  "Use resistant varieties, control weeds, monitor for whiteflies",
		},
		"Tomato Mosaic Virus": {
			Description: "Mosaic virus is transmitted by aphids and mechanical means",
			Treatment:   "Remove infected plants, control aphid populations, disinfect tools",
			Prevention:  "Use disease-free seeds, control aphids, practice good hygiene",
		},
		"Tomato Healthy": {
			Description: "The tomato plant appears healthy with no visible disease symptoms",
			Treatment:   "Continue current care practices, monitor regularly for any changes",
			Prevention:  "Maintain proper watering, fertilization, and pest management",
		},
		"Potato Early Blight": {
			Description: "Early blight in potatoes is caused by Alternaria solani",
			Treatment:   "Apply fungicides containing chlorothalonil, remove infected foliage",
			Prevention:  "Practice crop rotation, maintain proper spacing, avoid overhead watering",
		},
		"Potato Late Blight": {
			Description: "Late blight in potatoes is caused by Phytophthora infestans",
			Treatment:   "Apply fungicides containing chlorothalonil or copper, remove infected plants",
			Prevention:  "Avoid overhead watering, ensure good drainage, practice crop rotation",
		},
		"Potato Healthy": {
			Description: "The potato plant appears healthy with no visible disease symptoms",
			Treatment:   "Continue current care practices, monitor regularly for any changes",
			Prevention:  "Maintain proper watering, fertilization, and pest management",
		},
		"Corn Northern Leaf Blight": {
			Description: "Northern leaf blight is caused by the fungus Exserohilum turcicum",
			Treatment:   "Apply fungicides containing azoxystrobin or propiconazole",
			Prevention:  "Use resistant varieties, practice crop rotation, maintain proper spacing",
		},
		"Corn Common Rust": {
			Description: "Common rust is caused by the fungus Puccinia sorghi",
			Treatment:   "Apply fungicides containing azoxystrobin or propiconazole",
			Prevention:  "Use resistant varieties, practice crop rotation, avoid overhead watering",
		},
		"Corn Gray Leaf Spot": {
			Description: "Gray leaf spot is caused by the fungus Cercospora zeae-maydis",
			Treatment:   "Apply fungicides containing azoxystrobin or propiconazole",
			Prevention:  "Use resistant varieties, practice crop rotation, maintain proper spacing",
		},
		"Corn Healthy": {
			Description: "The corn plant appears healthy with no visible disease symptoms",
			Treatment:   "Continue current care practices, monitor regularly for any changes",
			Prevention:  "Maintain proper watering, fertilization, and pest management",
		},
	}
}
