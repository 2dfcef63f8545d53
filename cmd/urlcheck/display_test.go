// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"sync"
	"time"

	"github.com/siemens/urlcheck/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("display", func() {

	It("counts progress concurrently", func() {
		p := &progress{}
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Observe(types.Verdict{Class: types.Reachable})
				p.Observe(types.Verdict{Class: types.Failed})
				p.Observe(types.Verdict{Class: types.Indeterminate})
				p.Observe(types.Verdict{Class: types.Reachable})
			}()
		}
		wg.Wait()
		Expect(p.Get()).To(Equal(types.Tally{Reachable: 16, Failed: 8, Indeterminate: 8}))
	})

	It("renders a plain summary when not writing to a terminal", func() {
		var buff bytes.Buffer
		newSummary(&buff).Report(types.Tally{Reachable: 3, Failed: 1})
		Expect(buff.String()).To(Equal("3 OK, 1 Error, 0 Unknown\n"))
	})

	It("renders progress", func() {
		var buff bytes.Buffer
		newRenderer(&buff, "urls.txt").Render(types.Tally{Reachable: 1, Indeterminate: 2})
		Expect(buff.String()).To(MatchRegexp(`^. checking URLs from urls.txt: 3 checked\n   1 OK, 0 Error, 2 Unknown\n$`))
	})

	It("spins", func() {
		s := newSpinner(10 * time.Millisecond)
		first := s.Spinner()
		Expect(s.phases).To(ContainElement(first))
		Eventually(s.Spinner).Within(time.Second).ProbeEvery(5 * time.Millisecond).
			ShouldNot(Equal(first))
	})

})
