// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// maxDifficulty is the largest number of leading zero hex digits the POW
// predicate can check for.
const maxDifficulty = 16

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time         `json:"date"`
	ChainID       uint16            `json:"chain_id"`        // The chain id represents an unique id for this running instance.
	TransPerBlock uint16            `json:"trans_per_block"` // The number of pending transactions that triggers the sealing of a block.
	Difficulty    uint16            `json:"difficulty"`      // How difficult it needs to be to solve the work problem.
	MiningReward  uint64            `json:"mining_reward"`   // Reward for mining a block.
	Balances      map[string]uint64 `json:"balances"`        // Opening balances credited by the genesis block.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if genesis.Difficulty > maxDifficulty {
		return Genesis{}, fmt.Errorf("difficulty %d exceeds the maximum of %d", genesis.Difficulty, maxDifficulty)
	}

	return genesis, nil
}
