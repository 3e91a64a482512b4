package layout

// memoKey identifies a measurement within one layout pass.
type memoKey struct {
	id        NodeID
	known     KnownSize
	available AvailableSize
	// content marks a measurement that ignores the node's main size.
	content bool
}

// pass holds the state of a single ComputeLayout call. Measurements made
// while sizing flex items are memoised so that deep trees are not measured
// once per ancestor.
type pass struct {
	tree *Tree
	memo map[memoKey]Size
}

func newPass(t *Tree) *pass {
	return &pass{tree: t, memo: make(map[memoKey]Size)}
}

func (p *pass) layout(id NodeID, n *node, known KnownSize, available AvailableSize) {
	p.compute(id, n, known, available, true)
}

// compute returns the border box size of n. When perform is set the
// results are written to the node and its descendants; otherwise the tree
// is left untouched.
func (p *pass) compute(id NodeID, n *node, known KnownSize, available AvailableSize, perform bool) Size {
	return p.run(memoKey{id: id, known: known, available: available}, n, perform)
}

// contentMain measures n along the main axis as if its size there were auto.
func (p *pass) contentMain(id NodeID, n *node, known KnownSize, available AvailableSize, row bool) float32 {
	tmp := *n
	if row {
		tmp.style.Width = Auto()
	} else {
		tmp.style.Height = Auto()
	}
	key := memoKey{id: id, known: known, available: available, content: true}
	return mainOf(p.run(key, &tmp, false), row)
}

func (p *pass) run(key memoKey, n *node, perform bool) Size {
	known, available := key.known, key.available
	if !perform {
		if s, ok := p.memo[key]; ok {
			return s
		}
	}

	var size Size
	switch {
	case n.style.Display == DisplayNone:
		if perform {
			p.hide(n)
		}
	case len(n.children) == 0:
		size = p.leaf(n, known, available, perform)
	default:
		size = p.flex(n, known, available, perform)
	}

	if !perform {
		p.memo[key] = size
	}
	return size
}

func (p *pass) hide(n *node) {
	n.layout = Layout{}
	n.dirty = false
	for _, child := range n.children {
		if c, ok := p.tree.nodes[child]; ok {
			p.hide(c)
		}
	}
}

type bounds struct {
	minW, maxW, minH, maxH float32
}

func resolveBounds(st Style, available AvailableSize) bounds {
	ins := st.insets()
	return bounds{
		minW: max(st.MinWidth.resolveOr(available.Width, 0), ins.Horizontal()),
		maxW: st.MaxWidth.resolveOr(available.Width, inf),
		minH: max(st.MinHeight.resolveOr(available.Height, 0), ins.Vertical()),
		maxH: st.MaxHeight.resolveOr(available.Height, inf),
	}
}

func (b bounds) main(row bool) (float32, float32) {
	if row {
		return b.minW, b.maxW
	}
	return b.minH, b.maxH
}

func (b bounds) cross(row bool) (float32, float32) {
	return b.main(!row)
}

// clamp applies lo after hi, so a minimum wins over a smaller maximum.
func clamp(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// resolveKnown fills in dimensions fixed by the node's own style.
func resolveKnown(st Style, known KnownSize, available AvailableSize, b bounds) KnownSize {
	if !known.HasWidth {
		known.Width, known.HasWidth = st.Width.resolve(available.Width)
	}
	if !known.HasHeight {
		known.Height, known.HasHeight = st.Height.resolve(available.Height)
	}
	if known.HasWidth {
		known.Width = clamp(known.Width, b.minW, b.maxW)
	}
	if known.HasHeight {
		known.Height = clamp(known.Height, b.minH, b.maxH)
	}
	return known
}

// innerSpace is the space left for content once insets are removed.
func innerSpace(st Style, known KnownSize, available AvailableSize) AvailableSize {
	ins := st.insets()
	inner := AvailableSize{
		Width:  available.Width.shrink(ins.Horizontal()),
		Height: available.Height.shrink(ins.Vertical()),
	}
	if known.HasWidth {
		inner.Width = Definite(known.Width - ins.Horizontal())
	}
	if known.HasHeight {
		inner.Height = Definite(known.Height - ins.Vertical())
	}
	return inner
}

func (p *pass) leaf(n *node, known KnownSize, available AvailableSize, perform bool) Size {
	st := n.style
	b := resolveBounds(st, available)
	known = resolveKnown(st, known, available, b)
	ins := st.insets()

	size := Size{Width: known.Width, Height: known.Height}
	if !known.HasWidth || !known.HasHeight {
		var content Size
		if n.leaf != nil {
			inner := KnownSize{HasWidth: known.HasWidth, HasHeight: known.HasHeight}
			if known.HasWidth {
				inner.Width = max(known.Width-ins.Horizontal(), 0)
			}
			if known.HasHeight {
				inner.Height = max(known.Height-ins.Vertical(), 0)
			}
			content = n.leaf.Measure(inner, innerSpace(st, known, available))
		}
		if !known.HasWidth {
			size.Width = clamp(content.Width+ins.Horizontal(), b.minW, b.maxW)
		}
		if !known.HasHeight {
			size.Height = clamp(content.Height+ins.Vertical(), b.minH, b.maxH)
		}
	}

	if perform {
		n.layout.Size = size
		n.layout.ContentSize = size
		n.dirty = false
	}
	return size
}

// Axis helpers. The main axis follows the container direction.

func mainOf(s Size, row bool) float32 {
	if row {
		return s.Width
	}
	return s.Height
}

func crossOf(s Size, row bool) float32 {
	return mainOf(s, !row)
}

func sizeFrom(main, cross float32, row bool) Size {
	if row {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func pointFrom(main, cross float32, row bool) Point {
	if row {
		return Point{X: main, Y: cross}
	}
	return Point{X: cross, Y: main}
}

func spaceOf(a AvailableSize, row bool) (main, cross AvailableSpace) {
	if row {
		return a.Width, a.Height
	}
	return a.Height, a.Width
}

func spaceFrom(main, cross AvailableSpace, row bool) AvailableSize {
	if row {
		return AvailableSize{Width: main, Height: cross}
	}
	return AvailableSize{Width: cross, Height: main}
}

func knownFrom(main float32, hasMain bool, cross float32, hasCross bool, row bool) KnownSize {
	if row {
		return KnownSize{Width: main, HasWidth: hasMain, Height: cross, HasHeight: hasCross}
	}
	return KnownSize{Width: cross, HasWidth: hasCross, Height: main, HasHeight: hasMain}
}

func knownOf(k KnownSize, row bool) (main float32, hasMain bool, cross float32, hasCross bool) {
	if row {
		return k.Width, k.HasWidth, k.Height, k.HasHeight
	}
	return k.Height, k.HasHeight, k.Width, k.HasWidth
}

// edges returns the leading and trailing amounts along an axis.
func edges(e Edges, row bool) (lead, trail float32) {
	if row {
		return e.Left, e.Right
	}
	return e.Top, e.Bottom
}

func values(st Style, row bool) (size, lo, hi Value) {
	if row {
		return st.Width, st.MinWidth, st.MaxWidth
	}
	return st.Height, st.MinHeight, st.MaxHeight
}

type item struct {
	id    NodeID
	n     *node
	align Align

	marginMain, marginCross float32

	basis, hypo, target float32
	minMain, maxMain    float32
	grow, shrink        float32

	cross              float32
	crossKnown         bool
	minCross, maxCross float32
	stretch            bool

	frozen    bool
	violation float32
}

func (p *pass) flex(n *node, known KnownSize, available AvailableSize, perform bool) Size {
	st := n.style
	row := st.Direction == Row
	b := resolveBounds(st, available)
	known = resolveKnown(st, known, available, b)
	ins := st.insets()
	insMainLead, insMainTrail := edges(ins, row)
	insCrossLead, insCrossTrail := edges(ins, !row)
	insMain, insCross := insMainLead+insMainTrail, insCrossLead+insCrossTrail

	knownMain, hasMain, knownCross, hasCross := knownOf(known, row)
	inner := innerSpace(st, known, available)
	_, availCross := spaceOf(inner, row)

	items := p.collect(n, row, inner, max(knownCross-insCross, 0), hasCross)
	var gaps float32
	if len(items) > 1 {
		gaps = st.Gap * float32(len(items)-1)
	}

	var innerMain float32
	if hasMain {
		innerMain = max(knownMain-insMain, 0)
	} else {
		sum := gaps
		for _, it := range items {
			sum += it.hypo + it.marginMain
		}
		lo, hi := b.main(row)
		innerMain = max(clamp(sum+insMain, lo, hi)-insMain, 0)
	}
	resolveFlexible(items, innerMain-gaps)

	for _, it := range items {
		if it.crossKnown {
			continue
		}
		s := p.compute(it.id, it.n, knownFrom(it.target, true, 0, false, row), spaceFrom(Definite(innerMain), availCross, row), false)
		it.cross = clamp(crossOf(s, row), it.minCross, it.maxCross)
	}

	var lineCross, outerCross float32
	if hasCross {
		lineCross = max(knownCross-insCross, 0)
		outerCross = knownCross
	} else {
		for _, it := range items {
			lineCross = max(lineCross, it.cross+it.marginCross)
		}
		lo, hi := b.cross(row)
		outerCross = clamp(lineCross+insCross, lo, hi)
		// A larger minimum widens the line; a smaller maximum lets the
		// items overflow instead of squeezing them.
		lineCross = max(lineCross, outerCross-insCross)
	}
	for _, it := range items {
		if it.stretch && !it.crossKnown {
			it.cross = clamp(lineCross-it.marginCross, it.minCross, it.maxCross)
		}
	}

	size := sizeFrom(innerMain+insMain, outerCross, row)
	if !perform {
		return size
	}

	free := innerMain - gaps
	for _, it := range items {
		free -= it.target + it.marginMain
	}
	offset, between := justify(st.JustifyContent, free, len(items))
	childSpace := spaceFrom(Definite(innerMain), Definite(lineCross), row)

	content := size
	pos := insMainLead + offset
	for _, it := range items {
		c := it.n
		p.compute(it.id, c, knownFrom(it.target, true, it.cross, true, row), childSpace, true)

		leadMain, trailMain := edges(c.style.Margin, row)
		leadCross, _ := edges(c.style.Margin, !row)
		mainPos := pos + leadMain
		crossPos := insCrossLead + leadCross + alignOffset(it.align, lineCross-it.cross-it.marginCross)
		c.layout.Location = pointFrom(mainPos, crossPos, row)
		pos = mainPos + it.target + trailMain + st.Gap + between

		extent := c.layout.Size
		if c.style.Overflow == OverflowVisible {
			extent.Width = max(extent.Width, c.layout.ContentSize.Width)
			extent.Height = max(extent.Height, c.layout.ContentSize.Height)
		}
		m := c.style.Margin
		content.Width = max(content.Width, c.layout.Location.X+extent.Width+m.Right+ins.Right)
		content.Height = max(content.Height, c.layout.Location.Y+extent.Height+m.Bottom+ins.Bottom)
	}
	for _, child := range n.children {
		if c, ok := p.tree.nodes[child]; ok && c.style.Display == DisplayNone {
			p.hide(c)
		}
	}

	n.layout.Size = size
	n.layout.ContentSize = content
	n.dirty = false
	return size
}

// collect resolves the flex base size and main-axis limits of each child.
func (p *pass) collect(n *node, row bool, inner AvailableSize, innerCross float32, hasCross bool) []*item {
	availMain, availCross := spaceOf(inner, row)
	items := make([]*item, 0, len(n.children))
	for _, id := range n.children {
		c, ok := p.tree.nodes[id]
		if !ok || c.style.Display == DisplayNone {
			continue
		}
		cs := c.style
		it := &item{id: id, n: c, align: n.style.AlignItems, grow: cs.FlexGrow, shrink: cs.FlexShrink}
		if cs.AlignSelf != nil {
			it.align = *cs.AlignSelf
		}
		lead, trail := edges(cs.Margin, row)
		it.marginMain = lead + trail
		lead, trail = edges(cs.Margin, !row)
		it.marginCross = lead + trail

		mainV, minMainV, maxMainV := values(cs, row)
		crossV, minCrossV, maxCrossV := values(cs, !row)
		it.minCross = minCrossV.resolveOr(availCross, 0)
		it.maxCross = maxCrossV.resolveOr(availCross, inf)
		it.maxMain = maxMainV.resolveOr(availMain, inf)
		it.stretch = it.align == AlignStretch && crossV.IsAuto()

		if v, ok := crossV.resolve(availCross); ok {
			it.cross, it.crossKnown = clamp(v, it.minCross, it.maxCross), true
		} else if it.stretch && hasCross {
			it.cross, it.crossKnown = clamp(innerCross-it.marginCross, it.minCross, it.maxCross), true
		}
		measure := knownFrom(0, false, it.cross, it.crossKnown, row)

		if v, ok := cs.FlexBasis.resolve(availMain); ok {
			it.basis = v
		} else if v, ok := mainV.resolve(availMain); ok {
			it.basis = v
		} else {
			it.basis = mainOf(p.compute(id, c, measure, inner, false), row)
		}

		switch v, ok := minMainV.resolve(availMain); {
		case ok:
			it.minMain = v
		case cs.Overflow == OverflowScroll:
			it.minMain = 0
		default:
			// Automatic minimum: the min-content size, capped by the
			// specified size and the maximum.
			minSpace := spaceFrom(MinContent, availCross, row)
			if v, ok := mainV.resolve(availMain); ok {
				it.minMain = min(p.contentMain(id, c, measure, minSpace, row), v)
			} else {
				it.minMain = mainOf(p.compute(id, c, measure, minSpace, false), row)
			}
			it.minMain = min(it.minMain, it.maxMain)
		}

		it.hypo = clamp(it.basis, it.minMain, it.maxMain)
		items = append(items, it)
	}
	return items
}

// resolveFlexible distributes space along the main axis, freezing items
// as they hit their limits.
func resolveFlexible(items []*item, space float32) {
	var hypo float32
	for _, it := range items {
		hypo += it.hypo + it.marginMain
	}
	growing := hypo < space
	for _, it := range items {
		it.target = it.hypo
		factor := it.shrink
		if growing {
			factor = it.grow
		}
		it.frozen = hypo == space || factor == 0 ||
			(growing && it.basis > it.hypo) || (!growing && it.basis < it.hypo)
	}

	var initialFree float32
	first := true
	for {
		var used, factors, scaled float32
		unfrozen := 0
		for _, it := range items {
			if it.frozen {
				used += it.target + it.marginMain
				continue
			}
			used += it.basis + it.marginMain
			unfrozen++
			if growing {
				factors += it.grow
			} else {
				factors += it.shrink
				scaled += it.shrink * it.basis
			}
		}
		if unfrozen == 0 {
			return
		}
		free := space - used
		if first {
			initialFree, first = free, false
		}
		if factors < 1 {
			if s := initialFree * factors; abs(s) < abs(free) {
				free = s
			}
		}

		var total float32
		for _, it := range items {
			if it.frozen {
				continue
			}
			unclamped := it.basis
			switch {
			case growing && factors > 0:
				unclamped += free * it.grow / factors
			case !growing && scaled > 0:
				unclamped += free * it.shrink * it.basis / scaled
			}
			it.target = clamp(unclamped, it.minMain, it.maxMain)
			it.violation = it.target - unclamped
			total += it.violation
		}
		for _, it := range items {
			if it.frozen {
				continue
			}
			switch {
			case total == 0,
				total > 0 && it.violation > 0,
				total < 0 && it.violation < 0:
				it.frozen = true
			}
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// justify returns the leading offset and the extra space between items.
func justify(j Justify, free float32, count int) (offset, between float32) {
	if count == 0 {
		return 0, 0
	}
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if free > 0 && count > 1 {
			return 0, free / float32(count-1)
		}
	case JustifySpaceAround:
		if free > 0 {
			s := free / float32(count)
			return s / 2, s
		}
	case JustifySpaceEvenly:
		if free > 0 {
			s := free / float32(count+1)
			return s, s
		}
	}
	return 0, 0
}

func alignOffset(a Align, free float32) float32 {
	switch a {
	case AlignEnd:
		return free
	case AlignCenter:
		return free / 2
	}
	return 0
}
