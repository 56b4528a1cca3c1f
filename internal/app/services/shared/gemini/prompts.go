package gemini

const passportAnalysisPrompt = `Analyse cette image de passeport et extrais les informations suivantes au format JSON strict:

{
  "documentType": "passport",
  "isValid": true/false,
  "confidence": 0-100,
  "extractedData": {
    "firstName": "Prénom(s)",
    "lastName": "Nom de famille",
    "birthDate": "YYYY-MM-DD",
    "birthPlace": "Lieu de naissance",
    "nationality": "Nationalité (code ISO 2 lettres, ex: GA pour Gabon, FR pour France)",
    "gender": "M ou F",
    "passportNumber": "Numéro du passeport",
    "issueDate": "YYYY-MM-DD",
    "expiryDate": "YYYY-MM-DD",
    "issuingAuthority": "Autorité émettrice"
  },
  "warnings": ["Liste des problèmes détectés: document expiré, mauvaise qualité, etc."]
}

RÈGLES:
- Renvoie UNIQUEMENT le JSON, sans markdown ni texte supplémentaire
- Si un champ n'est pas lisible, mets null
- isValid=false si le document est expiré, illisible ou suspect
- confidence indique la confiance globale (0-100)
- Les dates DOIVENT être au format YYYY-MM-DD`

const documentAnalysisPrompt = `Analyse ce document et identifie son type. Extrais les informations pertinentes au format JSON:

{
  "documentType": "passport|id_card|birth_certificate|proof_of_address|photo|other",
  "isValid": true/false,
  "confidence": 0-100,
  "description": "Description brève du document",
  "extractedData": {},
  "warnings": []
}

Renvoie UNIQUEMENT le JSON, sans markdown ni texte supplémentaire.`

func promptFor(documentType string) string {
	if documentType == "passport" {
		return passportAnalysisPrompt
	}
	return documentAnalysisPrompt
}
