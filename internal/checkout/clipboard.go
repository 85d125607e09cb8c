package checkout

import "fmt"

// CopyField resolves the copyable text for a quote field and hands it to
// the clipboard when one is wired. No state-machine impact.
func (c *Controller) CopyField(field string) (string, error) {
	c.mu.Lock()
	quote := c.quote
	c.mu.Unlock()

	if quote == nil {
		return "", ErrNoQuote
	}

	var text string
	switch field {
	case FieldAddress:
		text = quote.Address
	case FieldAmount:
		text = quote.Amount.String()
	default:
		return "", fmt.Errorf("unknown copy field %q", field)
	}

	if c.deps.Clipboard != nil {
		if err := c.deps.Clipboard.Write(text); err != nil {
			return "", fmt.Errorf("clipboard write failed: %w", err)
		}
	}
	return text, nil
}
