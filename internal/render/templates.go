// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import "html/template"

var landingFuncs = template.FuncMap{
	"widget": renderWidget,
	// iterate yields n elements for range-based star ratings.
	"iterate": func(n int) []int {
		if n < 0 {
			n = 0
		}
		return make([]int, n)
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(landingFuncs).Parse(text))
}

// docTmpl is the outer document. Theme tokens become CSS custom
// properties so both section fragments and custom CSS can reference
// them.
var docTmpl = mustParse("doc", `<!DOCTYPE html>
<html lang="bn">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root{
--bnk-primary:{{.Theme.PrimaryColor}};
--bnk-secondary:{{.Theme.SecondaryColor}};
--bnk-accent:{{.Theme.AccentColor}};
--bnk-bg:{{.Theme.BackgroundColor}};
--bnk-text:{{.Theme.TextColor}};
--bnk-radius:{{.Theme.BorderRadius}};
}
*{box-sizing:border-box;margin:0}
body{font-family:'{{.Theme.FontFamily}}',system-ui,sans-serif;background:var(--bnk-bg);color:var(--bnk-text)}
.bnk-section{max-width:1080px;margin:0 auto;padding:32px 16px}
.bnk-btn{display:inline-block;padding:14px 32px;border-radius:var(--bnk-radius);background:{{if eq .Theme.ButtonStyle "filled"}}var(--bnk-accent){{else}}transparent{{end}};color:{{if eq .Theme.ButtonStyle "filled"}}#fff{{else}}var(--bnk-accent){{end}};{{if ne .Theme.ButtonStyle "filled"}}border:2px solid var(--bnk-accent);{{end}}text-decoration:none;font-weight:700;cursor:pointer}
.bnk-grid{display:grid;gap:16px}
.bnk-field{display:block;width:100%;padding:12px;margin-bottom:12px;border:1px solid #d1d5db;border-radius:var(--bnk-radius)}
.bnk-row{display:flex;flex-wrap:wrap}
.bnk-countdown-unit{display:inline-block;min-width:64px;padding:12px;margin:0 4px;background:rgba(255,255,255,.15);border-radius:var(--bnk-radius);font-size:28px;font-weight:700}
@media(max-width:640px){.bnk-grid{grid-template-columns:1fr!important}.bnk-row{flex-direction:column}.bnk-row>div{width:100%!important}}
</style>
{{if .CustomCSS}}<style>{{.CustomCSS}}</style>{{end}}
</head>
<body>
{{.Body}}
</body>
</html>
`)

var heroTmpl = mustParse("hero-product", `<section class="bnk-section" style="background:{{.BackgroundColor}};color:{{.TextColor}}">
<div class="bnk-row" style="gap:24px;align-items:center{{if eq .Layout "right-image"}};flex-direction:row-reverse{{end}}">
<div style="flex:1;min-width:280px">
{{range $i, $img := .Images}}{{if eq $i 0}}<img src="{{$img}}" alt="{{$.Title}}" style="width:100%;border-radius:var(--bnk-radius)">{{end}}{{end}}
</div>
<div style="flex:1;min-width:280px">
<h1 style="font-size:32px;margin-bottom:8px">{{.Title}}</h1>
<p style="margin-bottom:16px">{{.Subtitle}}</p>
<p style="font-size:28px;font-weight:700;margin-bottom:16px">৳{{.Price}}
{{if .OriginalPrice}}<del style="font-size:18px;opacity:.6;margin-left:8px">৳{{.OriginalPrice}}</del>{{end}}</p>
{{if .Badges}}<div class="bnk-grid" style="grid-template-columns:repeat({{len .Badges}},1fr);margin-bottom:16px">
{{range .Badges}}<div style="text-align:center;padding:8px;background:var(--bnk-secondary);border-radius:var(--bnk-radius)"><strong>{{.Text}}</strong><br><small>{{.Subtext}}</small></div>{{end}}
</div>{{end}}
<a class="bnk-btn" href="{{.ButtonLink}}">{{.ButtonText}}</a>
</div>
</div>
</section>
`)

var galleryTmpl = mustParse("image-gallery", `<section class="bnk-section">
<div class="bnk-grid" style="grid-template-columns:{{.ColumnStyle}};gap:{{.Gap}}">
{{range .Images}}<img src="{{.}}" alt="" style="width:100%;border-radius:var(--bnk-radius){{if eq $.AspectRatio "square"}};aspect-ratio:1/1;object-fit:cover{{end}}">{{end}}
</div>
</section>
`)

var badgesTmpl = mustParse("feature-badges", `<section class="bnk-section" style="background:{{.BackgroundColor}};color:{{.TextColor}}">
{{if .Title}}<h2 style="text-align:center;margin-bottom:24px">{{.Title}}</h2>{{end}}
<div class="bnk-grid" style="grid-template-columns:{{.ColumnStyle}}">
{{range .Badges}}<div style="text-align:center;padding:16px"><div style="font-size:22px;font-weight:700">{{.Text}}</div><div style="opacity:.8">{{.Subtext}}</div></div>{{end}}
</div>
</section>
`)

var textTmpl = mustParse("text-block", `<section class="bnk-section" style="background:{{.BackgroundColor}};color:{{.TextColor}};text-align:{{.Alignment}};font-size:{{.FontSize}};padding:{{.Padding}}">
{{.Content}}
</section>
`)

var productInfoTmpl = mustParse("product-info", `<section class="bnk-section">
<div class="bnk-row" style="gap:24px{{if eq .Layout "vertical"}};flex-direction:column{{end}}">
{{if and .ShowImages .Product.FirstImage}}<div style="flex:1;min-width:280px"><img src="{{.Product.FirstImage}}" alt="{{.Product.Name}}" style="width:100%;border-radius:var(--bnk-radius)"></div>{{end}}
<div style="flex:1;min-width:280px">
<h2 style="margin-bottom:8px">{{.Product.Name}}</h2>
{{if .ShowPrice}}<p style="font-size:24px;font-weight:700;margin-bottom:12px">৳{{.Product.Price}}
{{if .Product.OriginalPrice}}<del style="font-size:16px;opacity:.6;margin-left:8px">৳{{.Product.OriginalPrice}}</del>{{end}}</p>{{end}}
{{if and .ShowDescription .Product.Description}}<p>{{.Product.Description}}</p>{{end}}
</div>
</div>
</section>
`)

// checkoutTmpl posts through the same price-authoritative order API as
// the cart flow; the page's slug rides along as order_source.
var checkoutTmpl = mustParse("checkout-form", `<section id="checkout" class="bnk-section" style="background:{{.BackgroundColor}}">
<h2 style="text-align:center;margin-bottom:24px">{{.Title}}</h2>
<form class="bnk-checkout" method="post" action="/api/orders" style="max-width:480px;margin:0 auto"
 data-product-id="{{.ProductID}}" data-order-source="{{.OrderSource}}">
{{range .Fields}}
<label style="display:block;margin-bottom:4px;font-weight:600">{{.Label}}{{if .Required}} *{{end}}</label>
{{if eq .Type "textarea"}}<textarea class="bnk-field" name="{{.Name}}" rows="3"{{if .Required}} required{{end}}></textarea>
{{else}}<input class="bnk-field" type="{{.Type}}" name="{{.Name}}"{{if .Required}} required{{end}}>
{{end}}
{{end}}
<button class="bnk-btn" type="submit" style="width:100%;background:{{.AccentColor}};color:#fff">{{.ButtonText}}</button>
<p class="bnk-checkout-result" style="margin-top:12px;text-align:center"></p>
</form>
<script>
document.querySelectorAll('.bnk-checkout').forEach(function(form){
form.addEventListener('submit',function(e){
e.preventDefault();
var fd=new FormData(form);
var body={
customer_name:fd.get('name')||'',
customer_phone:fd.get('phone')||'',
shipping_address:fd.get('address')||'',
zone:fd.get('zone')||'',
order_source:form.dataset.orderSource,
items:[{product_id:form.dataset.productId,quantity:1}]
};
fetch(form.action,{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify(body)})
.then(function(r){return r.json().then(function(j){return{ok:r.ok,j:j}})})
.then(function(res){
var out=form.querySelector('.bnk-checkout-result');
if(res.ok){out.textContent='অর্ডার সফল হয়েছে! অর্ডার নম্বর: '+res.j.orderNumber;form.reset();}
else{out.textContent=res.j.error||'অর্ডার ব্যর্থ হয়েছে';}
});
});
});
</script>
</section>
`)

var ctaTmpl = mustParse("cta-banner", `<section class="bnk-section" style="background:{{.BackgroundColor}};color:{{.TextColor}};text-align:center">
<h2 style="margin-bottom:8px">{{.Title}}</h2>
<p style="margin-bottom:16px">{{.Subtitle}}</p>
<a class="bnk-btn" href="{{.ButtonLink}}">{{.ButtonText}}</a>
</section>
`)

var testimonialsTmpl = mustParse("testimonials", `<section class="bnk-section">
{{if .Title}}<h2 style="text-align:center;margin-bottom:24px">{{.Title}}</h2>{{end}}
<div class="bnk-grid" style="grid-template-columns:{{.ColumnStyle}}">
{{range .Items}}<blockquote style="padding:16px;background:var(--bnk-secondary);border-radius:var(--bnk-radius)">
<p style="margin-bottom:8px">{{.Content}}</p>
<footer><strong>{{.Name}}</strong>{{if .Role}} — {{.Role}}{{end}}
{{if .Rating}} <span aria-label="rating">{{range $i := iterate .Rating}}★{{end}}</span>{{end}}</footer>
</blockquote>{{end}}
</div>
</section>
`)

var faqTmpl = mustParse("faq", `<section class="bnk-section" style="background:{{.BackgroundColor}}">
{{if .Title}}<h2 style="text-align:center;margin-bottom:24px">{{.Title}}</h2>{{end}}
{{range .Items}}<details style="margin-bottom:8px;padding:12px;background:var(--bnk-secondary);border-radius:var(--bnk-radius)">
<summary style="font-weight:600;cursor:pointer">{{.Question}}</summary>
<p style="margin-top:8px">{{.Answer}}</p>
</details>{{end}}
</section>
`)

var imageTextTmpl = mustParse("image-text", `<section class="bnk-section" style="background:{{.BackgroundColor}}">
<div class="bnk-row" style="gap:24px;align-items:center{{if eq .ImagePosition "right"}};flex-direction:row-reverse{{end}}">
{{if .Image}}<div style="flex:1;min-width:280px"><img src="{{.Image}}" alt="{{.Title}}" style="width:100%;border-radius:var(--bnk-radius)"></div>{{end}}
<div style="flex:1;min-width:280px">
<h2 style="margin-bottom:8px">{{.Title}}</h2>
<p style="margin-bottom:16px">{{.Description}}</p>
{{if .ButtonText}}<a class="bnk-btn" href="{{.ButtonLink}}">{{.ButtonText}}</a>{{end}}
</div>
</div>
</section>
`)

var videoTmpl = mustParse("video", `<section class="bnk-section">
{{if .VideoURL}}<video style="width:100%;border-radius:var(--bnk-radius)" src="{{.VideoURL}}"{{if .Autoplay}} autoplay muted{{end}}{{if .Controls}} controls{{end}}{{if .Loop}} loop{{end}}></video>{{end}}
</section>
`)

// countdownTmpl shows the server-computed remaining time and keeps it
// ticking client-side from the absolute deadline.
var countdownTmpl = mustParse("countdown", `<section class="bnk-section" style="background:{{.BackgroundColor}};color:{{.TextColor}};text-align:center">
{{if .Title}}<h2 style="margin-bottom:16px">{{.Title}}</h2>{{end}}
<div class="bnk-countdown" data-end="{{.EndMillis}}">
<span class="bnk-countdown-unit" data-unit="days">{{.Remaining.Days}}</span>
<span class="bnk-countdown-unit" data-unit="hours">{{.Remaining.Hours}}</span>
<span class="bnk-countdown-unit" data-unit="minutes">{{.Remaining.Minutes}}</span>
<span class="bnk-countdown-unit" data-unit="seconds">{{.Remaining.Seconds}}</span>
</div>
{{if not .Elapsed}}<script>
(function(){
var el=document.currentScript.previousElementSibling;
var end=parseInt(el.dataset.end,10);
function tick(){
var s=Math.max(0,Math.floor((end-Date.now())/1000));
el.querySelector('[data-unit=days]').textContent=Math.floor(s/86400);
el.querySelector('[data-unit=hours]').textContent=Math.floor(s%86400/3600);
el.querySelector('[data-unit=minutes]').textContent=Math.floor(s%3600/60);
el.querySelector('[data-unit=seconds]').textContent=s%60;
}
tick();setInterval(tick,1000);
})();
</script>{{end}}
</section>
`)

var dividerTmpl = mustParse("divider", `<hr style="border:none;border-top:{{.Thickness}} {{.Style}} {{.Color}};width:{{.Width}};margin:0 auto">
`)

var spacerTmpl = mustParse("spacer", `<div style="height:{{.Height}}"></div>
`)

var rowTmpl = mustParse("row", `<section class="bnk-section" style="background:{{.Row.Settings.BackgroundColor}}{{if .Row.Settings.BackgroundImage}};background-image:url('{{.Row.Settings.BackgroundImage}}');background-size:cover{{end}};padding:{{.Row.Settings.Padding}};margin:{{.Row.Settings.Margin}}{{if .Row.Settings.MinHeight}};min-height:{{.Row.Settings.MinHeight}}{{end}}{{if eq .Row.Settings.MaxWidth "full"}};max-width:none{{end}}">
<div class="bnk-row" style="gap:{{.Row.Settings.Gap}}">
{{range .Columns}}<div style="width:{{.Width}};padding:{{.Column.Settings.Padding}};background:{{.Column.Settings.BackgroundColor}}">
{{range .Column.Widgets}}{{widget .}}{{end}}
</div>{{end}}
</div>
</section>
`)
