package words

import "testing"

func testDict(t *testing.T) *Dictionary {
	t.Helper()
	d, err := NewFromLists(
		[]string{"CRANE", "HELLO", "BOOKS"},
		[]string{"BOOST", "WORLD"},
	)
	if err != nil {
		t.Fatalf("NewFromLists: %v", err)
	}
	return d
}

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		in     string
		valid  bool
		reason Reason
		norm   string
	}{
		{"crane", true, "", "CRANE"},
		{"  crane ", true, "", "CRANE"},
		{"", false, ReasonEmptyInput, ""},
		{"   ", false, ReasonEmptyInput, ""},
		{"cat", false, ReasonWrongLength, ""},
		{"cranes", false, ReasonWrongLength, ""},
		{"cr4ne", false, ReasonInvalidCharacters, ""},
		{"cran!", false, ReasonInvalidCharacters, ""},
	}
	for _, tc := range cases {
		v := ValidateFormat(tc.in)
		if v.Valid != tc.valid || v.Reason != tc.reason || v.Normalized != tc.norm {
			t.Errorf("ValidateFormat(%q) = %+v, want valid=%v reason=%q norm=%q",
				tc.in, v, tc.valid, tc.reason, tc.norm)
		}
	}
}

func TestMembershipAndValidateWord(t *testing.T) {
	d := testDict(t)

	if !d.IsMember("boost") {
		t.Fatal("BOOST should be a member (allowed list)")
	}
	if !d.IsMember("crane") {
		t.Fatal("CRANE should be a member (answers are always allowed)")
	}
	if d.IsMember("zzzzz") {
		t.Fatal("ZZZZZ should not be a member")
	}

	v := d.ValidateWord("crane")
	if !v.Valid || !v.IsAnswer {
		t.Fatalf("ValidateWord(crane) = %+v, want valid answer", v)
	}
	v = d.ValidateWord("boost")
	if !v.Valid || v.IsAnswer {
		t.Fatalf("ValidateWord(boost) = %+v, want valid non-answer", v)
	}
	v = d.ValidateWord("zzzzz")
	if v.Valid || v.Reason != ReasonNotInDictionary {
		t.Fatalf("ValidateWord(zzzzz) = %+v, want not_in_dictionary", v)
	}
	// Format errors win over membership.
	if v := d.ValidateWord("zz"); v.Reason != ReasonWrongLength {
		t.Fatalf("ValidateWord(zz) reason = %q, want wrong_length", v.Reason)
	}
}

func TestPickRandom(t *testing.T) {
	d := testDict(t)
	answers := map[string]bool{"CRANE": true, "HELLO": true, "BOOKS": true}
	for i := 0; i < 50; i++ {
		w := d.PickRandom()
		if !answers[w] {
			t.Fatalf("PickRandom returned %q, not an answer", w)
		}
	}
}

func TestMutation(t *testing.T) {
	d := testDict(t)

	if v := d.Add("plumb"); !v.Valid {
		t.Fatalf("Add(plumb) rejected: %+v", v)
	}
	if !d.IsMember("PLUMB") {
		t.Fatal("added word not a member")
	}

	res := d.AddMany([]string{"ridge", "bad", "r1dge", "gorge"})
	if res.Added != 2 || res.Rejected != 2 {
		t.Fatalf("AddMany = %+v, want 2 added / 2 rejected", res)
	}

	if !d.Remove("crane") {
		t.Fatal("Remove(crane) failed")
	}
	if d.IsMember("CRANE") {
		t.Fatal("removed word still a member")
	}
	for i := 0; i < 50; i++ {
		if d.PickRandom() == "CRANE" {
			t.Fatal("removed answer still pickable")
		}
	}
	if d.Remove("crane") {
		t.Fatal("Remove succeeded twice")
	}

	d.Reset()
	if !d.IsMember("CRANE") || d.IsMember("PLUMB") {
		t.Fatal("Reset did not restore the built-in lists")
	}
}

func TestExportImport(t *testing.T) {
	d := testDict(t)

	exported := d.Export()
	if len(exported) != 5 {
		t.Fatalf("Export returned %d words, want 5", len(exported))
	}
	for i := 1; i < len(exported); i++ {
		if exported[i-1] >= exported[i] {
			t.Fatal("Export not sorted")
		}
	}

	res := d.Import([]string{"QUERY", "query", "nope!", "SHELF"})
	if res.Added != 3 || res.Rejected != 1 {
		t.Fatalf("Import = %+v, want 3 added / 1 rejected", res)
	}
	if d.IsMember("CRANE") {
		t.Fatal("Import did not replace wholesale")
	}
	if !d.IsMember("QUERY") || !d.IsMember("SHELF") {
		t.Fatal("imported words missing")
	}
	ans, allowed := d.Counts()
	if ans != 2 || allowed != 2 {
		t.Fatalf("Counts = (%d, %d), want (2, 2)", ans, allowed)
	}

	d.Reset()
	if a, _ := d.Counts(); a != 3 {
		t.Fatalf("Reset after Import: %d answers, want 3", a)
	}
}
