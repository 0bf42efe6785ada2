package scraper

import (
	"fmt"
	"time"
)

// Locators for the Cleartrip search page. The positional XPath candidates
// mirror the markup the site served when this was written; the
// attribute-based candidates are looser fallbacks that tend to survive
// redesigns longer.
var (
	originInput = Locator{Name: "origin input", Candidates: []Candidate{
		css(`input[placeholder="Where from?"]`),
		xpath(`//*[@id="__next"]/div/main/div/div[1]/div/div[1]/div[1]/div/div[1]/div[2]/div/div[2]/div/div[1]/input`),
	}}

	destinationInput = Locator{Name: "destination input", Candidates: []Candidate{
		css(`input[placeholder="Where to?"]`),
		xpath(`//*[@id="__next"]/div/main/div/div[1]/div/div[1]/div[1]/div/div[1]/div[2]/div/div[2]/div/div[3]/input`),
	}}

	departureDateField = Locator{Name: "departure date field", Candidates: []Candidate{
		xpath(`//*[@id="__next"]/div/main/div/div[1]/div/div[1]/div[1]/div/div[1]/div[2]/div/div[4]/div/div/div/div[1]/div[2]`),
		css(`[data-testid="departureDate"]`),
	}}

	returnDateField = Locator{Name: "return date field", Candidates: []Candidate{
		xpath(`//*[@id="__next"]/div/main/div/div[1]/div/div[1]/div[1]/div/div[1]/div[2]/div/div[4]/div/div/div/div[3]`),
		css(`[data-testid="returnDate"]`),
	}}

	searchButton = Locator{Name: "search button", Candidates: []Candidate{
		xpath(`//*[@id="__next"]/div/main/div/div[1]/div/div[1]/div[1]/div/div[1]/div[2]/div/div[7]/button`),
		xpath(`//button[contains(text(), "Search")]`),
	}}

	popupClose = Locator{Name: "popup close", Candidates: []Candidate{
		xpath(`//div[contains(@class, "modal") or contains(@class, "popup") or contains(@class, "login-banner")]//button`),
		xpath(`//*[contains(@class, "close") or contains(@aria-label, "close")]`),
	}}

	calendar = Locator{Name: "calendar", Candidates: []Candidate{
		xpath(`//div[contains(@class, "calendar")]`),
	}}

	resultsMarker = Locator{Name: "results marker", Candidates: []Candidate{
		xpath(`//div[contains(@class, "flight-results") or contains(@class, "search-results")]`),
		xpath(`//div[contains(@data-testid, "flightCard") or contains(@class, "flight-card")]`),
		xpath(`//*[contains(text(), "₹")]`),
	}}

	noFlightsMarker = Locator{Name: "no-flights message", Candidates: []Candidate{
		xpath(`//p[contains(text(), "No flights found") or contains(text(), "no results")]`),
	}}
)

// citySuggestion matches the autocomplete entry for an airport code.
func citySuggestion(city string) Locator {
	return Locator{
		Name: fmt.Sprintf("suggestion for %s", city),
		Candidates: []Candidate{
			xpath(fmt.Sprintf(`//li//p[contains(text(), "%s")]`, city)),
		},
	}
}

// calendarDay matches a selectable day cell by its aria-label, e.g.
// "Mon Apr 07 2025".
func calendarDay(day time.Time) Locator {
	label := day.Format("Mon Jan 02 2006")

	return Locator{
		Name: fmt.Sprintf("calendar day %s", label),
		Candidates: []Candidate{
			xpath(fmt.Sprintf(`//div[@aria-label="%s" and not(@aria-disabled="true")]`, label)),
		},
	}
}

// Result rows are read in one JS pass rather than element by element: a
// single snapshot cannot go stale halfway through, and per-field
// fallbacks degrade to "Unknown" instead of failing the row.
const extractionScriptTemplate = `
	(() => {
		const UNKNOWN = 'Unknown';

		const textBy = (root, selectors) => {
			for (const sel of selectors) {
				const el = root.querySelector(sel);
				if (el && el.innerText && el.innerText.trim()) {
					return el.innerText.trim().split('\n')[0];
				}
			}
			return '';
		};

		let cards = [];
		const cardSelectors = [
			'[data-testid*="flightCard"]',
			'[class*="flight-card"]',
			'[class*="flight-result"]',
			'[class*="flightItem"]',
		];
		for (const sel of cardSelectors) {
			cards = Array.from(document.querySelectorAll(sel));
			if (cards.length > 0) break;
		}

		if (cards.length === 0) {
			const leaves = Array.from(document.querySelectorAll('*')).filter(el =>
				el.childElementCount === 0 && (el.textContent || '').includes('₹'));
			const seen = new Set();
			for (const el of leaves) {
				let node = el;
				for (let up = 0; up < 3 && node.parentElement; up++) node = node.parentElement;
				if (!seen.has(node)) {
					seen.add(node);
					cards.push(node);
				}
			}
		}

		return cards.slice(0, %d).map(card => {
			const airline = textBy(card, [
				'[class*="airline"]', '[class*="carrier"]',
				'[data-testid*="airline"]', '[class*="flight-name"]',
			]) || UNKNOWN;

			let duration = textBy(card, [
				'[class*="duration"]', '[class*="travel-time"]', '[class*="flight-duration"]',
			]);
			if (!duration) {
				const m = (card.innerText || '').match(/\b\d{1,2}h(?:\s?\d{1,2}m)?\b/);
				duration = m ? m[0] : UNKNOWN;
			}

			let price = textBy(card, ['[class*="price"]', '[data-testid*="price"]']);
			if (!price) {
				const m = (card.innerText || '').match(/₹\s?[\d,]+/);
				price = m ? m[0] : UNKNOWN;
			}

			return { airline: airline, price: price, duration: duration };
		});
	})()
`

// maxResultRows caps how many rendered rows one extraction pass reads.
// Ranking truncates further; this only bounds the JS snapshot.
const maxResultRows = 30

func extractionScript() string {
	return fmt.Sprintf(extractionScriptTemplate, maxResultRows)
}
