package detector

var DetectFrom = detect
