package dict

// maxTokens caps the token cache. Inside an array the cache is flushed as
// ordinal leaves when it fills, so arrays can hold any number of members;
// anywhere else overflowing the cache is an error.
const maxTokens = 20

// modifiers are keyword prefixes that tag the entry they precede without
// becoming nodes themselves.
var modifiers = map[string]Flags{
	"inactive:": FlagInactive,
}

func quotedName(t token) Flags {
	if t.quoted {
		return FlagQuotedName
	}
	return 0
}

func quotedValue(t token) Flags {
	if t.quoted {
		return FlagQuotedValue
	}
	return 0
}

// Parse consumes a buffer into the dictionary. The grammar has no fixed
// keyword set: what gets created is decided by how many consecutive tokens
// were cached when a structural byte arrives, and by whether the node being
// appended to is an array. On failure the returned error is a *ParseError
// carrying the error kind and position; whatever was built before the
// failure stays in the dictionary and the caller may keep or discard it.
func (d *Dict) Parse(buf []byte) error {
	if d == nil {
		return &ParseError{Kind: ErrKindNullDict, Line: 1}
	}

	s := newScanner(string(buf))

	var (
		cache    [maxTokens]token
		count    int
		modifier Flags
		stack    []*Node
	)
	head := d.root

	fail := func(kind ErrKind) error {
		return newParseError(kind, s)
	}

	// tag applies a pending modifier to the entry's primary node
	tag := func(n *Node) {
		if modifier != 0 {
			n.flags |= modifier
			modifier = 0
		}
	}

	// endEntry drops cached tokens and any unconsumed modifier
	endEntry := func() {
		count = 0
		modifier = 0
	}

	// flush turns every cached token into an unnamed array leaf
	flush := func() {
		for i := 0; i < count; i++ {
			n := d.createNode(head, KindLeaf, "")
			n.value = cache[i].data
			n.flags |= quotedValue(cache[i])
		}
		count = 0
	}

	// instance returns the existing child of parent named t, or creates an
	// Instance node; repeated "car yoshi { } car toshi { }" entries merge
	// under one "car" this way
	instance := func(parent *Node, t token) *Node {
		n := d.childByName(parent, t.data)
		if n == nil {
			n = d.createNode(parent, KindInstance, t.data)
		}
		n.flags |= quotedName(t)
		return n
	}

	branch := func(parent *Node, t token) *Node {
		n := d.childByName(parent, t.data)
		if n == nil {
			n = d.createNode(parent, KindBranch, t.data)
		}
		n.flags |= quotedName(t)
		return n
	}

	// endValue handles ';' (and friends); also reached from a block end
	// with leftover tokens, which do not need their own terminator
	endValue := func() error {
		if head.kind == KindArray {
			switch count {
			case 0:
			case 1:
				n := d.createNode(head, KindLeaf, "")
				n.value = cache[0].data
				n.flags |= quotedValue(cache[0])
				tag(n)
			case 2:
				// array members are unnamed, the first token is dropped
				n := d.createNode(head, KindLeaf, "")
				n.value = cache[1].data
				n.flags |= quotedValue(cache[1])
				tag(n)
			default:
				return fail(ErrKindTokens)
			}
			return nil
		}

		switch count {
		case 0:
		case 1:
			n := d.createNode(head, KindLeaf, cache[0].data)
			n.flags |= quotedName(cache[0])
			tag(n)
		case 2:
			existing := d.childByName(head, cache[0].data)
			if existing == nil {
				n := d.createNode(head, KindLeaf, cache[0].data)
				n.flags |= quotedName(cache[0])
				n.value = cache[1].data
				n.flags |= quotedValue(cache[1])
				tag(n)
				break
			}
			// the name is taken: convert the existing node into an
			// instance, demoting its value (if any) to a leaf child, and
			// add the new token as another leaf
			existing.kind = KindInstance
			existing.flags |= quotedName(cache[0])
			if existing.value != "" {
				v := d.createNode(existing, KindLeaf, existing.value)
				if existing.flags&FlagQuotedValue != 0 {
					v.flags |= FlagQuotedName
				}
				existing.value = ""
				existing.flags &^= FlagQuotedValue
			}
			n := d.createNode(existing, KindLeaf, cache[1].data)
			n.flags |= quotedName(cache[1])
			tag(n)
		case 3:
			inst := instance(head, cache[0])
			mid := branch(inst, cache[1])
			n := d.createNode(mid, KindLeaf, cache[2].data)
			n.flags |= quotedName(cache[2])
			tag(n)
		case 4:
			inst := instance(head, cache[0])
			mid := branch(inst, cache[1])
			n := d.createNode(mid, KindLeaf, cache[2].data)
			n.flags |= quotedName(cache[2])
			n.value = cache[3].data
			n.flags |= quotedValue(cache[3])
			tag(n)
		default:
			// five or more: a branch holding name/value leaf pairs, with a
			// trailing unpaired token becoming a valueless leaf
			br := d.createNode(head, KindBranch, cache[0].data)
			br.flags |= quotedName(cache[0])
			tag(br)
			for i := 1; i < count; i++ {
				leaf := d.createNode(br, KindLeaf, cache[i].data)
				leaf.flags |= quotedName(cache[i])
				if i+1 < count {
					i++
					leaf.value = cache[i].data
					leaf.flags |= quotedValue(cache[i])
				}
			}
		}
		return nil
	}

	for {
		switch ev := s.next(); ev {

		case evToken:
			tok := s.tok
			if count == 0 && modifier == 0 && !tok.quoted {
				if m, ok := modifiers[tok.data]; ok {
					modifier = m
					continue
				}
			}
			cache[count] = tok
			count++
			if count == maxTokens {
				if head.kind != KindArray {
					return fail(ErrKindTokens)
				}
				flush()
			}

		case evBlockStart:
			if head.kind == KindArray {
				// 'a b c { … }' inside an array is three leaves plus an
				// unnamed branch member
				flush()
				stack = append(stack, head)
				n := d.createNode(head, KindBranch, "")
				tag(n)
				head = n
				endEntry()
				continue
			}
			switch count {
			case 0:
				// an unnamed block is only the optional top-level wrap
				if head != d.root || len(stack) != 0 {
					return fail(ErrKindExpectedName)
				}
				stack = append(stack, head)
			case 1:
				stack = append(stack, head)
				n := d.createNode(head, KindBranch, cache[0].data)
				n.flags |= quotedName(cache[0])
				tag(n)
				head = n
			case 2:
				stack = append(stack, head)
				n := d.createNode(instance(head, cache[0]), KindBranch, cache[1].data)
				n.flags |= quotedName(cache[1])
				tag(n)
				head = n
			case 3:
				stack = append(stack, head)
				mid := branch(instance(head, cache[0]), cache[1])
				n := d.createNode(mid, KindBranch, cache[2].data)
				n.flags |= quotedName(cache[2])
				tag(n)
				head = n
			default:
				return fail(ErrKindTokens)
			}
			endEntry()

		case evArrayStart:
			if head.kind == KindArray {
				flush()
				stack = append(stack, head)
				n := d.createNode(head, KindArray, "")
				tag(n)
				head = n
				endEntry()
				continue
			}
			switch count {
			case 0:
				// arrays must be named unless nested in another array
				return fail(ErrKindExpectedName)
			case 1:
				stack = append(stack, head)
				n := d.createNode(head, KindArray, cache[0].data)
				n.flags |= quotedName(cache[0])
				tag(n)
				head = n
			case 2:
				stack = append(stack, head)
				n := d.createNode(instance(head, cache[0]), KindArray, cache[1].data)
				n.flags |= quotedName(cache[1])
				tag(n)
				head = n
			case 3:
				stack = append(stack, head)
				mid := branch(instance(head, cache[0]), cache[1])
				n := d.createNode(mid, KindArray, cache[2].data)
				n.flags |= quotedName(cache[2])
				tag(n)
				head = n
			default:
				return fail(ErrKindTokens)
			}
			endEntry()

		case evBlockEnd:
			if head.kind == KindArray {
				return fail(ErrKindBlock)
			}
			if count == 0 {
				if len(stack) == 0 {
					return fail(ErrKindBlock)
				}
				head = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				continue
			}
			// leftover tokens before '}' do not need a terminator
			if err := endValue(); err != nil {
				return err
			}
			if len(stack) == 0 {
				return fail(ErrKindUnbalanced)
			}
			head = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			endEntry()

		case evEndVal:
			if err := endValue(); err != nil {
				return err
			}
			endEntry()

		case evArrayEnd:
			if head.kind != KindArray {
				return fail(ErrKindBlock)
			}
			// leftover tokens become members: an array can be written as a
			// plain whitespace-separated list
			flush()
			if len(stack) == 0 {
				return fail(ErrKindBlock)
			}
			head = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			endEntry()

		case evEOF:
			if count > 0 {
				return fail(ErrKindEOF)
			}
			if head != d.root {
				return fail(ErrKindUnbalanced)
			}
			return nil

		case evError:
			return fail(s.err)

		default:
			return fail(ErrKindInternal)
		}
	}
}
