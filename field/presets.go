package field

import "math/big"

// Goldilocks returns the 64-bit Goldilocks field p = 2^64 - 2^32 + 1, the
// reference target field of this library. 7 is a known generator of F_p*.
func Goldilocks() *Field {
	p := new(big.Int).SetUint64(18446744069414584321) // 2^64 - 2^32 + 1
	f, err := New(p)
	if err != nil {
		panic("field: invalid Goldilocks modulus: " + err.Error())
	}
	return f.WithGenerator(7)
}

// BabyBear returns the 31-bit field p = 2^31 - 2^27 + 1. 31 is a known
// generator of F_p*.
func BabyBear() *Field {
	p := big.NewInt(2013265921) // 2^31 - 2^27 + 1
	f, err := New(p)
	if err != nil {
		panic("field: invalid BabyBear modulus: " + err.Error())
	}
	return f.WithGenerator(31)
}

// Toy193 returns the toy field p = 193 used for the seeded FRI test vector
// in spec.md §8 scenario 3. 5 is a generator of F_193*.
func Toy193() *Field {
	f, err := New(big.NewInt(193))
	if err != nil {
		panic("field: invalid toy modulus: " + err.Error())
	}
	return f.WithGenerator(5)
}
