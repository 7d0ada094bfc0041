package llm

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/finance-pro/internal/model"
)

// DefaultHistoryLimit is how many of the newest transactions are sent.
const DefaultHistoryLimit = 15

const systemPrompt = "Ты финансовый помощник. Отвечай коротко и только текстом совета."

// historyEntry is the compact form of a transaction sent to the model.
type historyEntry struct {
	Type     string  `json:"t"`
	Category string  `json:"c"`
	Date     string  `json:"d"`
	Amount   float64 `json:"a"`
}

// BuildPrompt renders the advice prompt from the first limit transactions,
// which are expected newest first.
func BuildPrompt(transactions []model.Transaction, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	history := make([]historyEntry, 0, len(transactions))
	for _, txn := range transactions {
		kind := "Расход"
		if txn.IsIncome() {
			kind = "Доход"
		}
		history = append(history, historyEntry{
			Type:     kind,
			Amount:   txn.Amount,
			Category: txn.Category,
			Date:     txn.Date.UTC().Format("2006-01-02"),
		})
	}

	data, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}

	return fmt.Sprintf("Ты финансовый гуру. Проанализируй список операций в BYN (бел. рублях): %s. "+
		"Дай один меткий совет по экономии или похвалу за баланс. Не более 30 слов. Используй эмодзи.",
		data), nil
}
