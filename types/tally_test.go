// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("classifications and tallies", func() {

	DescribeTable("classifies status codes",
		func(status int, expected Classification) {
			Expect(Classify(status)).To(Equal(expected))
		},
		Entry("100 Continue", 100, Failed),
		Entry("199", 199, Failed),
		Entry("200 OK", 200, Reachable),
		Entry("204 No Content", 204, Reachable),
		Entry("301 Moved Permanently", 301, Reachable),
		Entry("399", 399, Reachable),
		Entry("400 Bad Request", 400, Failed),
		Entry("404 Not Found", 404, Failed),
		Entry("503 Service Unavailable", 503, Failed),
	)

	It("stringifies", func() {
		Expect(Reachable.String()).To(Equal("reachable"))
		Expect(Failed.String()).To(Equal("failed"))
		Expect(Indeterminate.String()).To(Equal("indeterminate"))
		Expect(Classification(42).String()).To(Equal("Classification(42)"))
	})

	It("counts and adds", func() {
		var t Tally
		t.Count(Reachable)
		t.Count(Reachable)
		t.Count(Failed)
		t.Count(Indeterminate)
		t.Count(Classification(-1))
		Expect(t).To(Equal(Tally{Reachable: 2, Failed: 1, Indeterminate: 2}))
		Expect(t.Total()).To(Equal(5))

		t.Add(Tally{Reachable: 1, Failed: 2, Indeterminate: 3})
		Expect(t).To(Equal(Tally{Reachable: 3, Failed: 3, Indeterminate: 5}))
	})

	It("returns indeterminate verdicts", func() {
		err := errors.New("D'oh!")
		v := IndeterminateVerdict("http://foo.example", err)
		Expect(v).To(And(
			HaveField("URL", "http://foo.example"),
			HaveField("Class", Indeterminate),
			HaveField("StatusCode", 0),
			HaveField("Err", MatchError(err)),
		))
	})

})
