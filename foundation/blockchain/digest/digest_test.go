package digest_test

import (
	"testing"

	"github.com/dishantyadav04/agribid/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestHash(t *testing.T) {
	type doc struct {
		Name  string
		Value int
	}

	t.Log("Given the need to produce stable content digests.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same value twice.")
		{
			h1 := digest.Hash(doc{Name: "mango", Value: 10})
			h2 := digest.Hash(doc{Name: "mango", Value: 10})

			if h1 != h2 {
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest both times: %s != %s", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest both times.", success)

			if len(h1) != 66 || h1[:2] != "0x" {
				t.Fatalf("\t%s\tTest 0:\tShould get a 0x prefixed 32 byte digest: %s", failed, h1)
			}
			t.Logf("\t%s\tTest 0:\tShould get a 0x prefixed 32 byte digest.", success)
		}

		t.Logf("\tTest 1:\tWhen hashing two different values.")
		{
			h1 := digest.Hash(doc{Name: "mango", Value: 10})
			h2 := digest.Hash(doc{Name: "mango", Value: 11})

			if h1 == h2 {
				t.Fatalf("\t%s\tTest 1:\tShould get different digests: %s", failed, h1)
			}
			t.Logf("\t%s\tTest 1:\tShould get different digests.", success)
		}
	}
}

func TestIsHashSolved(t *testing.T) {
	type table struct {
		name       string
		difficulty uint16
		hash       string
		solved     bool
	}

	tt := []table{
		{"zerohash", 2, digest.ZeroHash, true},
		{"twozeros", 2, "0x00ab000000000000000000000000000000000000000000000000000000000000", true},
		{"onezero", 2, "0x0ba0000000000000000000000000000000000000000000000000000000000000", false},
		{"short", 1, "0x00", false},
		{"nodifficulty", 0, "0xffab000000000000000000000000000000000000000000000000000000000000", true},
		{"excessive", 30, digest.ZeroHash, false},
	}

	t.Log("Given the need to check a hash against the difficulty rule.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking the %s case.", testID, tst.name)
			{
				if got := digest.IsHashSolved(tst.difficulty, tst.hash); got != tst.solved {
					t.Fatalf("\t%s\tTest %d:\tShould get solved[%v], got[%v].", failed, testID, tst.solved, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get solved[%v].", success, testID, tst.solved)
			}
		}
	}
}
