package prompt

// SplitBatches partitions the known URLs so that each batch's composed prompt
// plus its estimated reply fits under the token budget. A batch always
// advances by at least one URL; if even a single-URL prompt cannot fit, the
// budget is too small and *BudgetExceededError is returned. Inputs with no
// known URLs yield one empty batch so the run still issues a single request.
func (b *Builder) SplitBatches(tech string, known, exclusions []string, params Params) ([][]string, error) {
	if len(known) == 0 {
		if _, err := b.Build(tech, nil, exclusions, params); err != nil {
			return nil, err
		}
		return [][]string{nil}, nil
	}

	var batches [][]string
	var current []string

	for _, url := range known {
		tentative := append(append([]string{}, current...), url)

		text := Compose(tech, tentative, exclusions, params.NumResults)
		total := b.estimator.CountTokens(text) + b.estimator.OutputTokens(params.NumResults)

		if total > params.MaxTokens {
			alone := Compose(tech, []string{url}, exclusions, params.NumResults)
			alonePrompt := b.estimator.CountTokens(alone)
			aloneOutput := b.estimator.OutputTokens(params.NumResults)
			if alonePrompt+aloneOutput > params.MaxTokens {
				return nil, &BudgetExceededError{
					PromptTokens: alonePrompt,
					OutputTokens: aloneOutput,
					Budget:       params.MaxTokens,
				}
			}
			batches = append(batches, current)
			current = []string{url}
			continue
		}
		current = tentative
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches, nil
}

// DistributeResults splits a total result count across batches, giving
// earlier batches the remainder. Every batch asks for at least one result.
func DistributeResults(total, batches int) []int {
	if batches <= 0 {
		return nil
	}

	base := total / batches
	remainder := total % batches

	counts := make([]int, batches)
	for i := range counts {
		counts[i] = base
		if i < remainder {
			counts[i]++
		}
		if counts[i] < 1 {
			counts[i] = 1
		}
	}
	return counts
}
