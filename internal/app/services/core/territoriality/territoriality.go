package territoriality

import "fmt"

// TransferThresholdMonths is the stay duration from which the local organization takes over management.
const TransferThresholdMonths = 6

type Decision struct {
	ShouldTransferToCurrentLocation bool
	ShouldSignalToCurrentLocation   bool
	Reason                          string
}

// Determine decides whether a citizen abroad is transferred to, signaled to, or kept away from
// the organization of the country they currently stay in. Country codes are compared as given;
// callers normalize them first.
func Determine(residenceCountry, currentLocation string, stayDurationMonths int) Decision {
	residence, current := residenceCountry, currentLocation

	if residence == current {
		return Decision{
			Reason: fmt.Sprintf("Le lieu actuel (%s) correspond au pays de résidence : aucun changement de rattachement.", current),
		}
	}

	if stayDurationMonths >= TransferThresholdMonths {
		return Decision{
			ShouldTransferToCurrentLocation: true,
			Reason: fmt.Sprintf(
				"Séjour de %d mois en %s hors du pays de résidence %s (seuil de %d mois atteint) : la gestion est transférée à l'organisation locale.",
				stayDurationMonths, current, residence, TransferThresholdMonths,
			),
		}
	}

	return Decision{
		ShouldSignalToCurrentLocation: true,
		Reason: fmt.Sprintf(
			"Séjour de %d mois en %s hors du pays de résidence %s (moins de %d mois) : la présence est signalée à l'organisation locale.",
			stayDurationMonths, current, residence, TransferThresholdMonths,
		),
	}
}
