package services

import "github.com/dmitrijs2005/daylog/internal/client/models"

func hasQueuedCreate(queue []models.Intent, clientID string) (int, bool) {
	for i, in := range queue {
		if in.ClientID == clientID && in.Kind == models.IntentCreate {
			return i, true
		}
	}
	return -1, false
}

// withoutIntents returns queue minus every intent for clientID whose kind is
// listed. An empty kinds list removes all intents for clientID. The input
// slice is not modified.
func withoutIntents(queue []models.Intent, clientID string, kinds ...models.IntentKind) []models.Intent {
	out := make([]models.Intent, 0, len(queue))
	for _, in := range queue {
		if in.ClientID == clientID && matchesKind(in.Kind, kinds) {
			continue
		}
		out = append(out, in)
	}
	return out
}

func matchesKind(k models.IntentKind, kinds []models.IntentKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
